package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	usecase "student-records/internal/usecase/student"
	apperrors "student-records/pkg/errors"
	"student-records/pkg/logger"
)

// DeletedMessage is the confirmation returned by a successful delete.
const DeletedMessage = "Deleted successfully"

// StudentHandler handles HTTP requests for student records
type StudentHandler struct {
	uc  usecase.Usecase
	log *zap.Logger
}

// NewStudentHandler creates a new StudentHandler instance
func NewStudentHandler(uc usecase.Usecase, log *zap.Logger) *StudentHandler {
	return &StudentHandler{
		uc:  uc,
		log: log,
	}
}

// bindRequest decodes the JSON body. An empty body counts as an empty object.
func bindRequest(c *gin.Context) (StudentRequest, error) {
	var req StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return StudentRequest{}, err
	}
	return req, nil
}

// CreateStudent handles POST /api/students
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	req, err := bindRequest(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	created, err := h.uc.CreateStudent(c.Request.Context(), req.ToFields())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewStudentResponse(created))
}

// ListStudents handles GET /api/students
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.uc.ListStudents(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]StudentResponse, len(students))
	for i := range students {
		resp[i] = NewStudentResponse(&students[i])
	}
	c.JSON(http.StatusOK, resp)
}

// GetStudent handles GET /api/students/:id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	found, err := h.uc.GetStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewStudentResponse(found))
}

// UpdateStudent handles PUT /api/students/:id
func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	req, err := bindRequest(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}

	updated, err := h.uc.UpdateStudent(c.Request.Context(), c.Param("id"), req.ToFields())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewStudentResponse(updated))
}

// DeleteStudent handles DELETE /api/students/:id
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	if err := h.uc.DeleteStudent(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: DeletedMessage})
}

func (h *StudentHandler) badRequest(c *gin.Context, err error) {
	logger.WithContext(c.Request.Context(), h.log).Warn("invalid student request body",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
}

// handleError reports usecase errors. Store failures keep their message.
func (h *StudentHandler) handleError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(apperrors.HTTPStatus(err), ErrorResponse{Error: err.Error()})
}
