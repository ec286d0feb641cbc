package controller

import (
	"lms_backend/internal/middleware"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	Certificates *service.CertificateService
}

func NewCertificateController(certificates *service.CertificateService) *CertificateController {
	return &CertificateController{Certificates: certificates}
}

// List 我的证书
// @Summary 当前用户获得的全部证书
// @Tags certificate
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/v1/certificates [get]
func (ctl *CertificateController) List(c *gin.Context) {
	certs, err := ctl.Certificates.ListForUser(middleware.GetActor(c))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, certs)
}
