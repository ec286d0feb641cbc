package service

import (
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollCreatesProgress(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "password123", false)
	course, _ := env.createCourse(t, "Go Basics", 3)

	progress, err := env.Courses.Enroll(user, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, progress.TotalModulesCount)
	assert.Equal(t, 0, progress.CompletedModulesCount)
	assert.False(t, progress.StartedAt.IsZero())
}

func TestEnrollTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "password123", false)
	course, _ := env.createCourse(t, "Go Basics", 1)

	_, err := env.Courses.Enroll(user, course.ID)
	require.NoError(t, err)

	_, err = env.Courses.Enroll(user, course.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)
}

func TestEnrollInactiveCourse(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "password123", false)
	course, _ := env.createCourse(t, "Hidden Course", 1)
	require.NoError(t, env.DB.Model(course).Update("is_active", false).Error)

	_, err := env.Courses.Enroll(user, course.ID)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestListActiveFiltersByCategory(t *testing.T) {
	env := newTestEnv(t)
	c1, _ := env.createCourse(t, "Go Basics", 1)
	require.NoError(t, env.DB.Model(c1).Update("category", "programming").Error)
	c2, _ := env.createCourse(t, "Watercolor", 1)
	require.NoError(t, env.DB.Model(c2).Update("category", "art").Error)

	courses, err := env.Courses.ListActive("programming")
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Go Basics", courses[0].Title)
}

func TestCreateCourseStartsPendingAndOffline(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin@example.com", "password123", true)

	created, err := env.Courses.Create(admin, &model.Course{Title: "New Course"}, AuditEntry{})
	require.NoError(t, err)
	assert.False(t, created.IsActive)

	approval, err := env.CourseRepo.FindOrCreateApproval(created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalPending, approval.Status)

	assert.Equal(t, "course_create", env.lastAuditLog(t).Action)
}

func TestApproveActivatesCourse(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin@example.com", "password123", true)

	created, err := env.Courses.Create(admin, &model.Course{Title: "New Course"}, AuditEntry{})
	require.NoError(t, err)

	approval, err := env.Courses.Approve(admin, created.ID, "looks good", AuditEntry{})
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalApproved, approval.Status)
	assert.Equal(t, admin.ID, *approval.ReviewedByID)
	assert.NotNil(t, approval.ReviewedAt)

	course, err := env.CourseRepo.FindByID(created.ID)
	require.NoError(t, err)
	assert.True(t, course.IsActive)

	assert.Equal(t, "course_approve", env.lastAuditLog(t).Action)
}

func TestRejectDeactivatesCourse(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin@example.com", "password123", true)

	created, err := env.Courses.Create(admin, &model.Course{Title: "New Course"}, AuditEntry{})
	require.NoError(t, err)
	_, err = env.Courses.Approve(admin, created.ID, "", AuditEntry{})
	require.NoError(t, err)

	approval, err := env.Courses.Reject(admin, created.ID, "needs work", AuditEntry{})
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalRejected, approval.Status)
	assert.Equal(t, "needs work", approval.ReviewNotes)

	course, err := env.CourseRepo.FindByID(created.ID)
	require.NoError(t, err)
	assert.False(t, course.IsActive)
}

func TestBulkDeactivateCoursesCountsOnlyChangedRows(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin@example.com", "password123", true)
	c1, _ := env.createCourse(t, "Course One", 1)
	c2, _ := env.createCourse(t, "Course Two", 1)
	c3, _ := env.createCourse(t, "Course Three", 1)

	// c3 已经是下线状态，不计入变化行数
	require.NoError(t, env.DB.Model(c3).Update("is_active", false).Error)

	result, err := env.Courses.BulkDeactivate(admin, []uint{c1.ID, c2.ID, c3.ID}, AuditEntry{})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Requested)
	assert.EqualValues(t, 2, result.Affected)

	// 三门课一条聚合审计，带全部请求ID
	assert.EqualValues(t, 1, env.countAuditLogs(t, "course_bulk_deactivate"))
	entry := env.lastAuditLog(t)
	assert.Equal(t, "Course", entry.ModelName)
	rawIDs, ok := entry.Details["course_ids"].([]interface{})
	require.True(t, ok)
	assert.Len(t, rawIDs, 3)

	courses, err := env.Courses.ListActive("")
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestBulkActivateCourses(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin@example.com", "password123", true)
	c1, _ := env.createCourse(t, "Course One", 1)
	require.NoError(t, env.DB.Model(c1).Update("is_active", false).Error)

	result, err := env.Courses.BulkActivate(admin, []uint{c1.ID}, AuditEntry{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Affected)
	assert.Equal(t, "course_bulk_activate", env.lastAuditLog(t).Action)

	courses, err := env.Courses.ListActive("")
	require.NoError(t, err)
	assert.Len(t, courses, 1)
}

func TestBulkDeleteCoursesIsSoft(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin@example.com", "password123", true)
	c1, _ := env.createCourse(t, "Course One", 1)

	result, err := env.Courses.BulkDelete(admin, []uint{c1.ID}, AuditEntry{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.Affected)
	assert.Equal(t, "course_bulk_delete", env.lastAuditLog(t).Action)

	// 软删除后常规查询不可见，物理行保留
	_, err = env.CourseRepo.FindByID(c1.ID)
	assert.Error(t, err)

	var count int64
	require.NoError(t, env.DB.Unscoped().Model(&model.Course{}).Where("id = ?", c1.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCourseBulkRejectsEmptyIDList(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "admin@example.com", "password123", true)

	_, err := env.Courses.BulkDeactivate(admin, nil, AuditEntry{})
	assert.ErrorIs(t, err, util.ErrNoIDsProvided)
	_, err = env.Courses.BulkDelete(admin, nil, AuditEntry{})
	assert.ErrorIs(t, err, util.ErrNoIDsProvided)
}

func TestGetDetailAnonymousAndEnrolled(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com", "password123", false)
	course, _ := env.createCourse(t, "Go Basics", 2)

	// 匿名访问没有进度
	got, progress, err := env.Courses.GetDetail(nil, course.ID)
	require.NoError(t, err)
	assert.Len(t, got.Modules, 2)
	assert.Nil(t, progress)

	// 已报名用户附带进度
	_, err = env.Courses.Enroll(user, course.ID)
	require.NoError(t, err)
	_, progress, err = env.Courses.GetDetail(user, course.ID)
	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.Equal(t, user.ID, progress.UserID)
}
