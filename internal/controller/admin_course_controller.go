package controller

import (
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminCourseController struct {
	Courses *service.CourseService
}

func NewAdminCourseController(courses *service.CourseService) *AdminCourseController {
	return &AdminCourseController{Courses: courses}
}

type CourseRequest struct {
	Title           string                 `json:"title" binding:"required,max=255"`
	Description     string                 `json:"description"`
	Thumbnail       string                 `json:"thumbnail"`
	DurationMinutes int                    `json:"durationMinutes" binding:"min=0"`
	Difficulty      model.CourseDifficulty `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Category        string                 `json:"category"`
	Instructor      string                 `json:"instructor"`
}

type ReviewRequest struct {
	Notes string `json:"notes"`
}

type BulkCourseRequest struct {
	CourseIDs []uint `json:"courseIds" binding:"required,min=1"`
}

// List 全部课程
// @Summary 分页课程列表，含未上线课程
// @Tags admin
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/courses [get]
func (ctl *AdminCourseController) List(c *gin.Context) {
	page, limit := pagination(c)
	courses, total, err := ctl.Courses.ListAll(page, limit)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// Create 新建课程
// @Summary 新建课程，默认下线待审核
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CourseRequest true "课程信息"
// @Success 201 {object} util.Response
// @Router /api/v1/admin/courses [post]
func (ctl *AdminCourseController) Create(c *gin.Context) {
	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	course := &model.Course{
		Title:           req.Title,
		Description:     req.Description,
		Thumbnail:       req.Thumbnail,
		DurationMinutes: req.DurationMinutes,
		Difficulty:      req.Difficulty,
		Category:        req.Category,
		Instructor:      req.Instructor,
	}
	if course.Difficulty == "" {
		course.Difficulty = model.Beginner
	}

	created, err := ctl.Courses.Create(middleware.GetActor(c), course, auditMeta(c))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Created(c, created)
}

// Update 更新课程
// @Summary 更新课程信息
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "课程ID"
// @Param request body CourseRequest true "课程信息"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/courses/{id} [put]
func (ctl *AdminCourseController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		util.BadRequest(c, "invalid course id")
		return
	}

	var req CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	course, err := ctl.Courses.FindByID(id)
	if err != nil {
		util.HandleError(c, err)
		return
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Thumbnail = req.Thumbnail
	course.DurationMinutes = req.DurationMinutes
	if req.Difficulty != "" {
		course.Difficulty = req.Difficulty
	}
	course.Category = req.Category
	course.Instructor = req.Instructor

	if err := ctl.Courses.Update(middleware.GetActor(c), course, auditMeta(c)); err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, course)
}

// BulkActivate 批量上线
// @Summary 批量上线课程
// @Tags admin
// @Accept json
// @Produce json
// @Param request body BulkCourseRequest true "课程ID列表"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/courses/bulk-activate [post]
func (ctl *AdminCourseController) BulkActivate(c *gin.Context) {
	ctl.bulk(c, ctl.Courses.BulkActivate)
}

// BulkDeactivate 批量下线
// @Summary 批量下线课程
// @Tags admin
// @Accept json
// @Produce json
// @Param request body BulkCourseRequest true "课程ID列表"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/courses/bulk-deactivate [post]
func (ctl *AdminCourseController) BulkDeactivate(c *gin.Context) {
	ctl.bulk(c, ctl.Courses.BulkDeactivate)
}

// BulkDelete 批量删除
// @Summary 批量软删除课程
// @Tags admin
// @Accept json
// @Produce json
// @Param request body BulkCourseRequest true "课程ID列表"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/courses/bulk-delete [post]
func (ctl *AdminCourseController) BulkDelete(c *gin.Context) {
	ctl.bulk(c, ctl.Courses.BulkDelete)
}

func (ctl *AdminCourseController) bulk(c *gin.Context, op func(*model.User, []uint, service.AuditEntry) (*service.BulkResult, error)) {
	var req BulkCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := op(middleware.GetActor(c), req.CourseIDs, auditMeta(c))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, result)
}

// Approve 审核通过
// @Summary 审核通过并上线课程
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "课程ID"
// @Param request body ReviewRequest false "审核备注"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/courses/{id}/approve [post]
func (ctl *AdminCourseController) Approve(c *gin.Context) {
	ctl.review(c, ctl.Courses.Approve)
}

// Reject 审核驳回
// @Summary 驳回课程并下线
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "课程ID"
// @Param request body ReviewRequest false "驳回原因"
// @Success 200 {object} util.Response
// @Router /api/v1/admin/courses/{id}/reject [post]
func (ctl *AdminCourseController) Reject(c *gin.Context) {
	ctl.review(c, ctl.Courses.Reject)
}

func (ctl *AdminCourseController) review(c *gin.Context, op func(*model.User, uint, string, service.AuditEntry) (*model.CourseApproval, error)) {
	id, ok := pathID(c, "id")
	if !ok {
		util.BadRequest(c, "invalid course id")
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		util.BadRequest(c, err.Error())
		return
	}

	approval, err := op(middleware.GetActor(c), id, req.Notes, auditMeta(c))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, approval)
}
