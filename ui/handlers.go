package ui

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"presence-analyzer/domain/core"
	apperrors "presence-analyzer/internal/errors"
)

// NoUserData is the JSON body returned for a user without presence records
const NoUserData = "NO_USER_DATA"

var presenceHeader = [2]string{"Weekday", "Presence (s)"}

func (s *Server) handleUsers(c *gin.Context) {
	users, err := s.service.Users(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) handleUsersV2(c *gin.Context) {
	users, err := s.service.UsersWithAvatars(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) handleMeanTimeWeekday(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	result, err := s.service.MeanTimeWeekday(c.Request.Context(), userID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handlePresenceWeekday(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	result, err := s.service.PresenceWeekday(c.Request.Context(), userID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	rows := make([]interface{}, 0, len(result)+1)
	rows = append(rows, presenceHeader)
	for _, v := range result {
		rows = append(rows, v)
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) handlePresenceStartEnd(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	result, err := s.service.PresenceStartEnd(c.Request.Context(), userID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleStandardDeviation(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	result, err := s.service.StandardDeviation(c.Request.Context(), userID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// userIDParam parses the :id segment. A non-numeric id does not match any
// route, so it answers 404.
func userIDParam(c *gin.Context) (int, bool) {
	userID, err := core.ParseUserID(c.Param("id"))
	if err != nil {
		notFound := apperrors.NotFound(fmt.Sprintf("user %q", c.Param("id")))
		c.AbortWithStatusJSON(apperrors.HTTPStatus(notFound), gin.H{
			"error": notFound.Error(),
			"code":  notFound.Code,
		})
		return 0, false
	}
	return userID, true
}

func (s *Server) respondError(c *gin.Context, err error) {
	if errors.Is(err, core.ErrUserNotFound) {
		c.JSON(http.StatusOK, NoUserData)
		return
	}

	if !apperrors.IsAppError(err) {
		err = apperrors.InternalError("request failed", err)
	}
	status := apperrors.HTTPStatus(err)
	s.logger.Error("[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	c.AbortWithStatusJSON(status, gin.H{
		"error": err.Error(),
		"code":  apperrors.GetCode(err),
	})
}
