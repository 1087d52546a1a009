package forms

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (formAPIConfig *FormAPIConfig) SubmitEsportsWaiver(ginContext *gin.Context) {
	esportsWaiverRequest := EsportsWaiverRequest{}

	// Bind incoming JSON to struct and check for errors in the process.
	if parameterBindError := ginContext.ShouldBindJSON(&esportsWaiverRequest); parameterBindError != nil {
		ginContext.JSON(http.StatusBadRequest, gin.H{"error": "error parsing JSON, please check all required fields are present"})

		return
	}

	formResponse, submitError := formAPIConfig.Service.SubmitEsportsWaiver(ginContext.Request.Context(), esportsWaiverRequest)

	if submitError != nil {
		respondFormError(ginContext, submitError)

		return
	}

	ginContext.JSON(http.StatusOK, formResponse)
}

func (formAPIConfig *FormAPIConfig) SubmitMediaRelease(ginContext *gin.Context) {
	mediaReleaseRequest := MediaReleaseRequest{}

	if parameterBindError := ginContext.ShouldBindJSON(&mediaReleaseRequest); parameterBindError != nil {
		ginContext.JSON(http.StatusBadRequest, gin.H{"error": "error parsing JSON, please check all required fields are present"})

		return
	}

	formResponse, submitError := formAPIConfig.Service.SubmitMediaRelease(ginContext.Request.Context(), mediaReleaseRequest)

	if submitError != nil {
		respondFormError(ginContext, submitError)

		return
	}

	ginContext.JSON(http.StatusOK, formResponse)
}

func (formAPIConfig *FormAPIConfig) SubmitGeneralWaiver(ginContext *gin.Context) {
	generalWaiverRequest := GeneralWaiverRequest{}

	if parameterBindError := ginContext.ShouldBindJSON(&generalWaiverRequest); parameterBindError != nil {
		ginContext.JSON(http.StatusBadRequest, gin.H{"error": "error parsing JSON, please check all required fields are present"})

		return
	}

	formResponse, submitError := formAPIConfig.Service.SubmitGeneralWaiver(ginContext.Request.Context(), generalWaiverRequest)

	if submitError != nil {
		respondFormError(ginContext, submitError)

		return
	}

	ginContext.JSON(http.StatusOK, formResponse)
}

func respondFormError(ginContext *gin.Context, submitError error) {
	switch {
	case errors.Is(submitError, ErrDuplicateSubmission):
		ginContext.JSON(http.StatusConflict, gin.H{"error": "a form for this student and parent has already been submitted"})

	case errors.Is(submitError, ErrTermsNotAccepted):
		ginContext.JSON(http.StatusBadRequest, gin.H{"error": "all acknowledgments must be accepted to submit this waiver"})

	case errors.Is(submitError, ErrInvalidBirthDate):
		ginContext.JSON(http.StatusBadRequest, gin.H{"error": "invalid date of birth, expected YYYY-MM-DD"})

	default:
		ginContext.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit form, please try again in a few minutes"})
	}
}
