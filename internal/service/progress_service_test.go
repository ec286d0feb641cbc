package service

import (
	"testing"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordModuleCompletionRequiresEnrollment(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "password123", false)
	_, modules := env.createCourse(t, "Go Basics", 2)

	_, err := env.Progress.RecordModuleCompletion(user, modules[0].ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestRecordModuleCompletionUnknownModule(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "password123", false)

	_, err := env.Progress.RecordModuleCompletion(user, 9999)
	assert.ErrorIs(t, err, util.ErrModuleNotFound)
}

func TestCourseProgressPercentages(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "password123", false)
	course, modules := env.createCourse(t, "Go Basics", 4)

	_, err := env.Courses.Enroll(user, course.ID)
	require.NoError(t, err)

	expected := []float64{25, 50, 75, 100}
	for i, m := range modules {
		result, err := env.Progress.RecordModuleCompletion(user, m.ID)
		require.NoError(t, err)
		assert.Equal(t, expected[i], result.CourseProgress.ProgressPercentage)
		assert.Equal(t, i+1, result.CourseProgress.CompletedModulesCount)
		assert.Equal(t, 4, result.CourseProgress.TotalModulesCount)
	}

	final, err := env.ProgressRepo.FindCourseProgress(user.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, final.IsCompleted)
	assert.NotNil(t, final.CompletedAt)
}

func TestRecordModuleCompletionIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "password123", false)
	course, modules := env.createCourse(t, "Go Basics", 2)

	_, err := env.Courses.Enroll(user, course.ID)
	require.NoError(t, err)

	first, err := env.Progress.RecordModuleCompletion(user, modules[0].ID)
	require.NoError(t, err)
	firstCompletedAt := *first.ModuleProgress.CompletedAt

	again, err := env.Progress.RecordModuleCompletion(user, modules[0].ID)
	require.NoError(t, err)

	// 重复完成不改变计数，完成时间只记录第一次
	assert.Equal(t, first.CourseProgress.CompletedModulesCount, again.CourseProgress.CompletedModulesCount)
	assert.Equal(t, first.CourseProgress.ProgressPercentage, again.CourseProgress.ProgressPercentage)
	assert.Equal(t, firstCompletedAt.Unix(), again.ModuleProgress.CompletedAt.Unix())

	stats, err := env.Progress.GetStats(user)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalModulesCompleted)
}

func TestCourseCompletedAtStampedOnce(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "password123", false)
	course, modules := env.createCourse(t, "Go Basics", 1)

	_, err := env.Courses.Enroll(user, course.ID)
	require.NoError(t, err)

	first, err := env.Progress.RecordModuleCompletion(user, modules[0].ID)
	require.NoError(t, err)
	require.NotNil(t, first.CourseProgress.CompletedAt)
	completedAt := *first.CourseProgress.CompletedAt

	time.Sleep(10 * time.Millisecond)
	again, err := env.Progress.RecordModuleCompletion(user, modules[0].ID)
	require.NoError(t, err)
	assert.Equal(t, completedAt.Unix(), again.CourseProgress.CompletedAt.Unix())
}

func TestCourseCompletionIssuesCertificate(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "password123", false)
	course, modules := env.createCourse(t, "Go Basics", 2)

	_, err := env.Courses.Enroll(user, course.ID)
	require.NoError(t, err)

	_, err = env.Progress.RecordModuleCompletion(user, modules[0].ID)
	require.NoError(t, err)
	_, err = env.CertRepo.FindByUserAndCourse(user.ID, course.ID)
	assert.Error(t, err, "no certificate before course completion")

	_, err = env.Progress.RecordModuleCompletion(user, modules[1].ID)
	require.NoError(t, err)

	cert, err := env.CertRepo.FindByUserAndCourse(user.ID, course.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, cert.CertificateID)

	// 重复触发不会发第二张
	_, err = env.Progress.RecordModuleCompletion(user, modules[1].ID)
	require.NoError(t, err)
	count, err := env.CertRepo.CountByUser(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestMarkLearningActivityStreakRules(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "password123", false)

	// 首次活动从1开始
	stats, err := env.Progress.MarkLearningActivity(user)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.StreakDays)

	// 同日重复活动不变
	stats, err = env.Progress.MarkLearningActivity(user)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.StreakDays)

	// 昨天有活动则递增
	yesterday := time.Now().AddDate(0, 0, -1)
	require.NoError(t, env.DB.Model(&model.LearningStats{}).
		Where("user_id = ?", user.ID).
		Update("last_learning_date", yesterday).Error)
	stats, err = env.Progress.MarkLearningActivity(user)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.StreakDays)

	// 中断超过一天则重置为1
	threeDaysAgo := time.Now().AddDate(0, 0, -3)
	require.NoError(t, env.DB.Model(&model.LearningStats{}).
		Where("user_id = ?", user.ID).
		Update("last_learning_date", threeDaysAgo).Error)
	stats, err = env.Progress.MarkLearningActivity(user)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.StreakDays)
}

func TestStreakAdvancesAcrossShortDSTDay(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "password123", false)

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2026-03-08 美东进入夏令时，当天只有23小时
	stats, err := env.Progress.markLearningActivityAt(user, time.Date(2026, 3, 7, 20, 0, 0, 0, loc))
	require.NoError(t, err)
	require.Equal(t, 1, stats.StreakDays)

	stats, err = env.Progress.markLearningActivityAt(user, time.Date(2026, 3, 8, 12, 0, 0, 0, loc))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.StreakDays)
	require.NotNil(t, stats.LastLearningDate)
	assert.Equal(t, 8, stats.LastLearningDate.Day())
}

func TestRecomputeLearningStatsPreservesStreak(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "password123", false)
	course, modules := env.createCourse(t, "Go Basics", 1)

	_, err := env.Courses.Enroll(user, course.ID)
	require.NoError(t, err)
	_, err = env.Progress.RecordModuleCompletion(user, modules[0].ID)
	require.NoError(t, err)

	// 人为抬高连续天数，重算不得触碰
	require.NoError(t, env.DB.Model(&model.LearningStats{}).
		Where("user_id = ?", user.ID).
		Update("streak_days", 42).Error)

	stats, err := env.Progress.RecomputeLearningStats(user)
	require.NoError(t, err)
	assert.Equal(t, 42, stats.StreakDays)
	assert.Equal(t, 1, stats.TotalCoursesCompleted)
	assert.Equal(t, 1, stats.TotalModulesCompleted)
	assert.Equal(t, 1, stats.TotalCertificatesEarned)
}

func TestTrackModuleTimeAccumulates(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "password123", false)
	course, modules := env.createCourse(t, "Go Basics", 1)

	_, err := env.Courses.Enroll(user, course.ID)
	require.NoError(t, err)

	progress, err := env.Progress.TrackModuleTime(user, modules[0].ID, 30, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 30, progress.TimeSpentMinutes)
	assert.False(t, progress.IsCompleted)

	progress, err = env.Progress.TrackModuleTime(user, modules[0].ID, 45, 0.9)
	require.NoError(t, err)
	assert.Equal(t, 75, progress.TimeSpentMinutes)
	assert.Equal(t, 0.9, progress.LastPosition)

	stats, err := env.Progress.RecomputeLearningStats(user)
	require.NoError(t, err)
	assert.Equal(t, 1.25, stats.TotalLearningHours)
}

func TestEmptyCourseHasZeroPercentage(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "password123", false)
	course, _ := env.createCourse(t, "Empty Course", 0)

	progress, err := env.Courses.Enroll(user, course.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), progress.ProgressPercentage)
	assert.False(t, progress.IsCompleted)
}
