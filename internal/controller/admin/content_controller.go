package admin

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hmiyake/classquiz/internal/apperr"
	"github.com/hmiyake/classquiz/internal/dto"
	"github.com/hmiyake/classquiz/internal/middleware"
	"github.com/hmiyake/classquiz/internal/service"
	"github.com/rs/zerolog/log"
)

// ContentController exposes the teacher-facing CRUD for the content
// hierarchy. All handlers sit behind the teacher role guard.
type ContentController struct {
	contentService service.ContentService
}

func NewContentController(contentService service.ContentService) *ContentController {
	return &ContentController{contentService: contentService}
}

func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

// readUpload pulls an optional file field out of a multipart form.
func readUpload(ctx *gin.Context, field string) (*dto.Upload, error) {
	fileHeader, err := ctx.FormFile(field)
	if err != nil {
		return nil, nil // field absent
	}
	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &dto.Upload{Data: data, ContentType: fileHeader.Header.Get("Content-Type")}, nil
}

func respondErr(ctx *gin.Context, err error) {
	ctx.JSON(apperr.HTTPStatus(err), dto.ErrorResponse{Message: apperr.Message(err)})
}

// CreateSchool godoc
// @Summary (Teacher) Create a school
// @Tags Admin - Content
// @Accept mpfd
// @Produce json
// @Param name formData string true "School name"
// @Param password formData string true "Join password"
// @Param picture formData file false "School picture"
// @Success 201 {object} dto.SchoolResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/schools [post]
func (c *ContentController) CreateSchool(ctx *gin.Context) {
	var req dto.CreateSchoolRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	picture, err := readUpload(ctx, "picture")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid picture upload"})
		return
	}

	resp, err := c.contentService.CreateSchool(req, picture)
	if err != nil {
		log.Error().Err(err).Msg("Admin CreateSchool: service error")
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// DeleteSchool godoc
// @Summary (Teacher) Delete a school and everything beneath it
// @Tags Admin - Content
// @Produce json
// @Param school_id path int true "School ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/schools/{school_id} [delete]
func (c *ContentController) DeleteSchool(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "school_id")
	if !ok {
		return
	}
	if err := c.contentService.DeleteSchool(id); err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// CreateClassroom godoc
// @Summary (Teacher) Create a classroom in a school
// @Tags Admin - Content
// @Accept mpfd
// @Produce json
// @Param school_id path int true "School ID"
// @Param name formData string true "Classroom name"
// @Param password formData string true "Join password"
// @Param picture formData file false "Classroom picture"
// @Success 201 {object} dto.ClassroomResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/schools/{school_id}/classrooms [post]
func (c *ContentController) CreateClassroom(ctx *gin.Context) {
	schoolID, ok := parseUintParam(ctx, "school_id")
	if !ok {
		return
	}
	var req dto.CreateClassroomRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	picture, err := readUpload(ctx, "picture")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid picture upload"})
		return
	}

	claims := middleware.Identity(ctx)
	resp, err := c.contentService.CreateClassroom(schoolID, claims.UserID, req, picture)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// DeleteClassroom godoc
// @Summary (Teacher) Delete a classroom
// @Tags Admin - Content
// @Produce json
// @Param classroom_id path int true "Classroom ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/classrooms/{classroom_id} [delete]
func (c *ContentController) DeleteClassroom(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "classroom_id")
	if !ok {
		return
	}
	if err := c.contentService.DeleteClassroom(id); err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// CreateTest godoc
// @Summary (Teacher) Create a test in a classroom
// @Tags Admin - Content
// @Accept mpfd
// @Produce json
// @Param classroom_id path int true "Classroom ID"
// @Param name formData string true "Test name"
// @Param picture formData file false "Test picture"
// @Success 201 {object} dto.TestResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/classrooms/{classroom_id}/tests [post]
func (c *ContentController) CreateTest(ctx *gin.Context) {
	classroomID, ok := parseUintParam(ctx, "classroom_id")
	if !ok {
		return
	}
	var req dto.CreateTestRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	picture, err := readUpload(ctx, "picture")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid picture upload"})
		return
	}

	resp, err := c.contentService.CreateTest(classroomID, req, picture)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// AttachTest godoc
// @Summary (Teacher) Assign an existing test to another classroom
// @Tags Admin - Content
// @Produce json
// @Param test_id path int true "Test ID"
// @Param classroom_id path int true "Classroom ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/tests/{test_id}/classrooms/{classroom_id} [post]
func (c *ContentController) AttachTest(ctx *gin.Context) {
	testID, ok := parseUintParam(ctx, "test_id")
	if !ok {
		return
	}
	classroomID, ok := parseUintParam(ctx, "classroom_id")
	if !ok {
		return
	}
	if err := c.contentService.AttachTestToClassroom(testID, classroomID); err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// DeleteTest godoc
// @Summary (Teacher) Delete a test
// @Tags Admin - Content
// @Produce json
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/tests/{test_id} [delete]
func (c *ContentController) DeleteTest(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "test_id")
	if !ok {
		return
	}
	if err := c.contentService.DeleteTest(id); err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// CreateQuestion godoc
// @Summary (Teacher) Add a question to a test
// @Description Creates the question and recomputes the test's total_questions.
// @Tags Admin - Content
// @Accept mpfd
// @Produce json
// @Param test_id path int true "Test ID"
// @Param name formData string true "Question text"
// @Param picture formData file false "Question picture"
// @Param audio formData file false "Question audio clip"
// @Success 201 {object} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/tests/{test_id}/questions [post]
func (c *ContentController) CreateQuestion(ctx *gin.Context) {
	testID, ok := parseUintParam(ctx, "test_id")
	if !ok {
		return
	}
	var req dto.CreateQuestionRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	picture, err := readUpload(ctx, "picture")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid picture upload"})
		return
	}
	audio, err := readUpload(ctx, "audio")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid audio upload"})
		return
	}

	resp, err := c.contentService.CreateQuestion(testID, req, picture, audio)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// DeleteQuestion godoc
// @Summary (Teacher) Delete a question
// @Description Deletes the question and recomputes the test's total_questions.
// @Tags Admin - Content
// @Produce json
// @Param question_id path int true "Question ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questions/{question_id} [delete]
func (c *ContentController) DeleteQuestion(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "question_id")
	if !ok {
		return
	}
	if err := c.contentService.DeleteQuestion(id); err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// CreateOption godoc
// @Summary (Teacher) Add an option to a question
// @Tags Admin - Content
// @Accept mpfd
// @Produce json
// @Param question_id path int true "Question ID"
// @Param name formData string true "Option display text"
// @Param is_correct formData bool false "Whether this is the correct option"
// @Param picture formData file false "Option picture"
// @Success 201 {object} dto.OptionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questions/{question_id}/options [post]
func (c *ContentController) CreateOption(ctx *gin.Context) {
	questionID, ok := parseUintParam(ctx, "question_id")
	if !ok {
		return
	}
	var req dto.CreateOptionRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	picture, err := readUpload(ctx, "picture")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid picture upload"})
		return
	}

	resp, err := c.contentService.CreateOption(questionID, req, picture)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// DeleteOption godoc
// @Summary (Teacher) Delete an option
// @Tags Admin - Content
// @Produce json
// @Param option_id path int true "Option ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/options/{option_id} [delete]
func (c *ContentController) DeleteOption(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "option_id")
	if !ok {
		return
	}
	if err := c.contentService.DeleteOption(id); err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
