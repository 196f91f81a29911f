package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hmiyake/classquiz/internal/service"
)

// MediaController streams entity blobs: pictures for every content entity
// and audio clips for questions.
type MediaController struct {
	mediaService service.MediaService
}

func NewMediaController(mediaService service.MediaService) *MediaController {
	return &MediaController{mediaService: mediaService}
}

func (c *MediaController) stream(ctx *gin.Context, param string, fetch func(uint) (string, []byte, error)) {
	id, ok := parseUintParam(ctx, param)
	if !ok {
		return
	}
	contentType, data, err := fetch(id)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, contentType, data)
}

// SchoolPicture godoc
// @Summary Stream a school's picture
// @Tags Media
// @Produce octet-stream
// @Param school_id path int true "School ID"
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResponse
// @Router /schools/{school_id}/picture [get]
func (c *MediaController) SchoolPicture(ctx *gin.Context) {
	c.stream(ctx, "school_id", c.mediaService.SchoolPicture)
}

func (c *MediaController) ClassroomPicture(ctx *gin.Context) {
	c.stream(ctx, "classroom_id", c.mediaService.ClassroomPicture)
}

func (c *MediaController) TestPicture(ctx *gin.Context) {
	c.stream(ctx, "test_id", c.mediaService.TestPicture)
}

func (c *MediaController) QuestionPicture(ctx *gin.Context) {
	c.stream(ctx, "question_id", c.mediaService.QuestionPicture)
}

func (c *MediaController) QuestionAudio(ctx *gin.Context) {
	c.stream(ctx, "question_id", c.mediaService.QuestionAudio)
}

func (c *MediaController) OptionPicture(ctx *gin.Context) {
	c.stream(ctx, "option_id", c.mediaService.OptionPicture)
}
