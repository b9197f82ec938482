package handler

import (
	"strconv"

	"bitpesa-lending/internal/adapter/http/middleware"
	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/pkg/apperror"
	"bitpesa-lending/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requireCaller returns the authenticated caller or writes 401.
func requireCaller(c *gin.Context) (domain.Caller, bool) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return domain.Caller{}, false
	}
	return caller, true
}

func loanIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, apperror.Validation("loan id must be a positive integer"))
		return 0, false
	}
	return id, true
}

func transferIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("transfer id must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

// parseAmount converts a whole-unit string into smallest units of asset.
func parseAmount(c *gin.Context, asset domain.Asset, field, s string) (uint64, bool) {
	v, err := asset.ParseAmount(s)
	if err != nil {
		response.Error(c, apperror.Validation(field+": "+err.Error()))
		return 0, false
	}
	return v, true
}
