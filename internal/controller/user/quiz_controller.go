package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hmiyake/classquiz/internal/apperr"
	"github.com/hmiyake/classquiz/internal/dto"
	"github.com/hmiyake/classquiz/internal/middleware"
	"github.com/hmiyake/classquiz/internal/service"
	"github.com/rs/zerolog/log"
)

// QuizController covers the test-taking flow: randomized delivery, one
// answer per question into the ledger, then finalize into records.
type QuizController struct {
	deliveryService   service.DeliveryService
	submissionService service.SubmissionService
	scoringService    service.ScoringService
}

func NewQuizController(
	deliveryService service.DeliveryService,
	submissionService service.SubmissionService,
	scoringService service.ScoringService,
) *QuizController {
	return &QuizController{
		deliveryService:   deliveryService,
		submissionService: submissionService,
		scoringService:    scoringService,
	}
}

func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

func respondErr(ctx *gin.Context, err error) {
	ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: apperr.Message(err)})
}

// GetClassroomTests godoc
// @Summary List the tests assigned to a classroom
// @Tags Quiz
// @Produce json
// @Param classroom_id path int true "Classroom ID"
// @Success 200 {array} dto.TestResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /classrooms/{classroom_id}/tests [get]
func (c *QuizController) GetClassroomTests(ctx *gin.Context) {
	classroomID, ok := parseUintParam(ctx, "classroom_id")
	if !ok {
		return
	}
	tests, err := c.deliveryService.GetClassroomTests(classroomID)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetQuestions godoc
// @Summary Get the questions of a test in randomized order
// @Description Returns a fresh uniform shuffle on every request.
// @Tags Quiz
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {array} dto.DeliveredQuestion
// @Failure 404 {object} dto.ErrorResponse
// @Router /tests/{test_id}/questions [get]
func (c *QuizController) GetQuestions(ctx *gin.Context) {
	testID, ok := parseUintParam(ctx, "test_id")
	if !ok {
		return
	}
	questions, err := c.deliveryService.GetShuffledQuestions(testID)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// GetOptions godoc
// @Summary Get the options of a question with decoded display labels
// @Tags Quiz
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 200 {array} dto.DeliveredOption
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse "Stored option name cannot be decoded"
// @Router /questions/{question_id}/options [get]
func (c *QuizController) GetOptions(ctx *gin.Context) {
	questionID, ok := parseUintParam(ctx, "question_id")
	if !ok {
		return
	}
	options, err := c.deliveryService.GetOptions(questionID)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, options)
}

// SubmitAnswer godoc
// @Summary Submit an answer for one question
// @Tags Quiz
// @Accept json
// @Produce json
// @Param test_id path int true "Test ID"
// @Param question_id path int true "Question ID"
// @Param answer body dto.SubmitAnswerRequest true "Selected option"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse "Question has zero or multiple correct options"
// @Router /tests/{test_id}/questions/{question_id}/answer [post]
func (c *QuizController) SubmitAnswer(ctx *gin.Context) {
	testID, ok := parseUintParam(ctx, "test_id")
	if !ok {
		return
	}
	questionID, ok := parseUintParam(ctx, "question_id")
	if !ok {
		return
	}
	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	claims := middleware.Identity(ctx)
	resp, err := c.submissionService.SubmitAnswer(claims.UserID, testID, questionID, req.SelectedOptionID)
	if err != nil {
		log.Warn().Err(err).Uint("testID", testID).Uint("questionID", questionID).Msg("SubmitAnswer failed")
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// StartSession godoc
// @Summary Open a scoring session for a test
// @Tags Quiz
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 201 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "An open session already exists"
// @Router /tests/{test_id}/sessions [post]
func (c *QuizController) StartSession(ctx *gin.Context) {
	testID, ok := parseUintParam(ctx, "test_id")
	if !ok {
		return
	}
	claims := middleware.Identity(ctx)
	session, err := c.scoringService.StartSession(claims.UserID, claims.Username, testID)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, session)
}

// FinalizeTest godoc
// @Summary Finalize a test: aggregate pending answers into permanent records
// @Description Writes one record per answered question plus a total record,
// all sharing a group id, and clears the pending submissions. Atomic.
// @Tags Quiz
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.FinalizeResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Concurrent finalize in progress"
// @Router /tests/{test_id}/record [post]
func (c *QuizController) FinalizeTest(ctx *gin.Context) {
	testID, ok := parseUintParam(ctx, "test_id")
	if !ok {
		return
	}
	claims := middleware.Identity(ctx)
	resp, err := c.scoringService.FinalizeTest(claims.UserID, claims.Username, testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Uint("userID", claims.UserID).Msg("FinalizeTest failed")
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ResetSubmissions godoc
// @Summary Clear all pending submissions for the caller
// @Tags Quiz
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router /submissions/reset [post]
func (c *QuizController) ResetSubmissions(ctx *gin.Context) {
	claims := middleware.Identity(ctx)
	if err := c.submissionService.Reset(claims.UserID); err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
