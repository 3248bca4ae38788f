package handlers

import (
	"aptbillmanager/internal/middleware"
	"aptbillmanager/internal/models"

	"github.com/gin-gonic/gin"
)

func currentMember(c *gin.Context) (*models.CommitteeMember, bool) {
	v, ok := c.Get(middleware.MemberContextKey)
	if !ok {
		return nil, false
	}
	m, ok := v.(*models.CommitteeMember)
	return m, ok
}
