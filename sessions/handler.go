package sessions

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (sessionAPIConfig *SessionAPIConfig) GetSessions(ginContext *gin.Context) {
	campSlug := ginContext.Query("camp")

	sessions, listSessionsError := sessionAPIConfig.Service.ListSessions(ginContext.Request.Context(), campSlug)

	if listSessionsError != nil {
		ginContext.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch sessions"})

		return
	}

	ginContext.JSON(http.StatusOK, sessions)
}
