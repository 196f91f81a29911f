package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hmiyake/classquiz/internal/dto"
	"github.com/hmiyake/classquiz/internal/middleware"
	"github.com/hmiyake/classquiz/internal/service"
)

// RecordController serves the read-only dashboard projections.
type RecordController struct {
	recordQueryService service.RecordQueryService
}

func NewRecordController(recordQueryService service.RecordQueryService) *RecordController {
	return &RecordController{recordQueryService: recordQueryService}
}

func parseUintQuery(ctx *gin.Context, name string) (*uint, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format in query"})
		return nil, false
	}
	id := uint(val)
	return &id, true
}

// GetSessions godoc
// @Summary List sessions, filtered by test and/or user
// @Description With test_id: sessions that produced records for that test.
// With test_id and user_id: narrowed to one user. Without filters: the
// caller's own sessions.
// @Tags Records
// @Produce json
// @Param test_id query int false "Test ID"
// @Param user_id query int false "User ID"
// @Success 200 {array} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /sessions [get]
func (c *RecordController) GetSessions(ctx *gin.Context) {
	testID, ok := parseUintQuery(ctx, "test_id")
	if !ok {
		return
	}
	userID, ok := parseUintQuery(ctx, "user_id")
	if !ok {
		return
	}
	claims := middleware.Identity(ctx)
	sessions, err := c.recordQueryService.Sessions(testID, userID, claims.UserID)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, sessions)
}

// GetMyRecords godoc
// @Summary List the caller's permanent test records
// @Tags Records
// @Produce json
// @Success 200 {array} dto.TestRecordResponse
// @Router /records/my [get]
func (c *RecordController) GetMyRecords(ctx *gin.Context) {
	claims := middleware.Identity(ctx)
	records, err := c.recordQueryService.MyRecords(claims.UserID)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, records)
}

// GetRecordsByGroup godoc
// @Summary List the records written by one finalize call
// @Tags Records
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {array} dto.TestRecordResponse
// @Router /records/groups/{group_id} [get]
func (c *RecordController) GetRecordsByGroup(ctx *gin.Context) {
	groupID := ctx.Param("group_id")
	records, err := c.recordQueryService.RecordsByGroup(groupID)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, records)
}
