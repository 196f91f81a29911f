package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hmiyake/classquiz/internal/dto"
	"github.com/hmiyake/classquiz/internal/middleware"
	"github.com/hmiyake/classquiz/internal/service"
	"github.com/rs/zerolog/log"
)

type MembershipController struct {
	membershipService service.MembershipService
}

func NewMembershipController(membershipService service.MembershipService) *MembershipController {
	return &MembershipController{membershipService: membershipService}
}

// JoinClassroom godoc
// @Summary Join a classroom as a student
// @Description Exact-match check on the classroom name and password.
// @Tags Membership
// @Accept json
// @Produce json
// @Param join body dto.JoinClassroomRequest true "Classroom credentials"
// @Success 200 {object} dto.ClassroomResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid classroom password"
// @Failure 404 {object} dto.ErrorResponse "Classroom not found"
// @Router /classrooms/join [post]
func (c *MembershipController) JoinClassroom(ctx *gin.Context) {
	var req dto.JoinClassroomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	claims := middleware.Identity(ctx)
	classroom, err := c.membershipService.JoinClassroom(claims.UserID, req)
	if err != nil {
		log.Warn().Err(err).Uint("userID", claims.UserID).Msg("JoinClassroom failed")
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, classroom)
}

// JoinSchool godoc
// @Summary Associate the calling teacher with a school
// @Tags Membership
// @Accept json
// @Produce json
// @Param join body dto.JoinSchoolRequest true "School credentials"
// @Success 200 {object} dto.SchoolResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid school name or password"
// @Router /schools/join [post]
func (c *MembershipController) JoinSchool(ctx *gin.Context) {
	var req dto.JoinSchoolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	claims := middleware.Identity(ctx)
	school, err := c.membershipService.JoinSchool(claims.UserID, req)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, school)
}

// GetMyClassrooms godoc
// @Summary List the caller's classrooms
// @Description Enrolled classrooms for students, owned classrooms for teachers.
// @Tags Membership
// @Produce json
// @Success 200 {array} dto.ClassroomResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /classrooms/my [get]
func (c *MembershipController) GetMyClassrooms(ctx *gin.Context) {
	claims := middleware.Identity(ctx)
	classrooms, err := c.membershipService.MyClassrooms(claims.UserID)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, classrooms)
}
