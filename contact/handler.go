package contact

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SubmitContact relays a general inquiry to the team inbox.
func (contactAPIConfig *ContactAPIConfig) SubmitContact(ginContext *gin.Context) {
	contactRequest := ContactRequest{}

	if parameterBindError := ginContext.ShouldBindJSON(&contactRequest); parameterBindError != nil {
		ginContext.JSON(http.StatusBadRequest, gin.H{"error": "error parsing JSON, please check all required fields are present"})

		return
	}

	if sendError := contactAPIConfig.Mailer.SendContactMessage(contactRequest.Name, contactRequest.Email, "", contactRequest.Message); sendError != nil {
		logrus.Errorf("error relaying contact message from %s: %s", contactRequest.Email, sendError)

		ginContext.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message, please try again in a few minutes"})

		return
	}

	ginContext.JSON(http.StatusOK, gin.H{"success": true, "message": "thanks for reaching out, we'll get back to you soon"})
}

// SubmitWorkforceContact relays a workforce development inquiry.
func (contactAPIConfig *ContactAPIConfig) SubmitWorkforceContact(ginContext *gin.Context) {
	workforceContactRequest := WorkforceContactRequest{}

	if parameterBindError := ginContext.ShouldBindJSON(&workforceContactRequest); parameterBindError != nil {
		ginContext.JSON(http.StatusBadRequest, gin.H{"error": "error parsing JSON, please check all required fields are present"})

		return
	}

	if sendError := contactAPIConfig.Mailer.SendContactMessage(workforceContactRequest.Name, workforceContactRequest.Email, workforceContactRequest.Organization, workforceContactRequest.Message); sendError != nil {
		logrus.Errorf("error relaying workforce contact message from %s: %s", workforceContactRequest.Email, sendError)

		ginContext.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send message, please try again in a few minutes"})

		return
	}

	ginContext.JSON(http.StatusOK, gin.H{"success": true, "message": "thanks for reaching out, we'll get back to you soon"})
}
