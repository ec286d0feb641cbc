package controller

import (
	"lms_backend/internal/middleware"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	Courses *service.CourseService
}

func NewCourseController(courses *service.CourseService) *CourseController {
	return &CourseController{Courses: courses}
}

// List 课程目录
// @Summary 上线课程列表，支持按分类筛选
// @Tags course
// @Produce json
// @Param category query string false "课程分类"
// @Success 200 {object} util.Response
// @Router /api/v1/courses [get]
func (ctl *CourseController) List(c *gin.Context) {
	courses, err := ctl.Courses.ListActive(c.Query("category"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, courses)
}

// Detail 课程详情
// @Summary 课程详情与模块列表，登录用户附带进度
// @Tags course
// @Produce json
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/v1/courses/{id} [get]
func (ctl *CourseController) Detail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		util.BadRequest(c, "invalid course id")
		return
	}

	course, progress, err := ctl.Courses.GetDetail(middleware.GetActor(c), id)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, gin.H{"course": course, "progress": progress})
}

// Enroll 报名课程
// @Summary 报名课程并创建进度记录
// @Tags course
// @Produce json
// @Param id path int true "课程ID"
// @Success 201 {object} util.Response
// @Router /api/v1/courses/{id}/enroll [post]
func (ctl *CourseController) Enroll(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		util.BadRequest(c, "invalid course id")
		return
	}

	progress, err := ctl.Courses.Enroll(middleware.GetActor(c), id)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Created(c, progress)
}
