package controller

import (
	"cbt_portal_backend/internal/repository"
	"cbt_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// pathID reads the :id parameter and answers 400 when it is not a positive integer.
func pathID(ctx *gin.Context) (uint, bool) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "Invalid id")
		return 0, false
	}
	return id, true
}

// currentUser returns the authenticated claims or answers 401.
func currentUser(ctx *gin.Context) (*util.Claims, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return nil, false
	}
	return claims, true
}

func paged(ctx *gin.Context, list interface{}, total int64, p repository.Page) {
	p.Normalize()
	util.Success(ctx, util.PageResponse{List: list, Total: total, Page: p.Page, Limit: p.Limit})
}
