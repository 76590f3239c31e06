package grpc

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	usecase "student-records/internal/usecase/student"
	apperrors "student-records/pkg/errors"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "students.v1.StudentService"

// DeletedMessage is returned by a successful DeleteStudent.
const DeletedMessage = "Deleted successfully"

// StudentServiceServer is the server API for the student service.
type StudentServiceServer interface {
	CreateStudent(context.Context, *CreateStudentRequest) (*Student, error)
	ListStudents(context.Context, *ListStudentsRequest) (*ListStudentsResponse, error)
	GetStudent(context.Context, *GetStudentRequest) (*Student, error)
	UpdateStudent(context.Context, *UpdateStudentRequest) (*Student, error)
	DeleteStudent(context.Context, *DeleteStudentRequest) (*DeleteStudentResponse, error)
}

// StudentService implements StudentServiceServer on top of the usecase layer.
type StudentService struct {
	uc  usecase.Usecase
	log *zap.Logger
}

var _ StudentServiceServer = (*StudentService)(nil)

// NewStudentService creates a new gRPC student service
func NewStudentService(uc usecase.Usecase, log *zap.Logger) *StudentService {
	return &StudentService{uc: uc, log: log}
}

// CreateStudent handles gRPC CreateStudent request
func (s *StudentService) CreateStudent(ctx context.Context, req *CreateStudentRequest) (*Student, error) {
	st, err := s.uc.CreateStudent(ctx, req.Fields.toDomain())
	if err != nil {
		return nil, statusError(err)
	}
	return toMessage(st), nil
}

// ListStudents handles gRPC ListStudents request
func (s *StudentService) ListStudents(ctx context.Context, _ *ListStudentsRequest) (*ListStudentsResponse, error) {
	students, err := s.uc.ListStudents(ctx)
	if err != nil {
		return nil, statusError(err)
	}

	resp := &ListStudentsResponse{Students: make([]Student, 0, len(students))}
	for i := range students {
		resp.Students = append(resp.Students, *toMessage(&students[i]))
	}
	return resp, nil
}

// GetStudent handles gRPC GetStudent request
func (s *StudentService) GetStudent(ctx context.Context, req *GetStudentRequest) (*Student, error) {
	st, err := s.uc.GetStudent(ctx, req.ID)
	if err != nil {
		return nil, statusError(err)
	}
	return toMessage(st), nil
}

// UpdateStudent handles gRPC UpdateStudent request
func (s *StudentService) UpdateStudent(ctx context.Context, req *UpdateStudentRequest) (*Student, error) {
	st, err := s.uc.UpdateStudent(ctx, req.ID, req.Fields.toDomain())
	if err != nil {
		return nil, statusError(err)
	}
	return toMessage(st), nil
}

// DeleteStudent handles gRPC DeleteStudent request
func (s *StudentService) DeleteStudent(ctx context.Context, req *DeleteStudentRequest) (*DeleteStudentResponse, error) {
	if err := s.uc.DeleteStudent(ctx, req.ID); err != nil {
		return nil, statusError(err)
	}
	return &DeleteStudentResponse{Message: DeletedMessage}, nil
}

// statusError keeps typed application errors as they are and turns anything
// else into an InternalError so the client sees codes.Internal.
func statusError(err error) error {
	if apperrors.IsNotFound(err) || apperrors.IsValidation(err) {
		return err
	}
	return apperrors.NewInternalError("student store failure", err)
}

// RegisterStudentServiceServer registers srv on s.
func RegisterStudentServiceServer(s grpc.ServiceRegistrar, srv StudentServiceServer) {
	s.RegisterService(&StudentServiceDesc, srv)
}

func unaryHandler[Req any, Resp any](
	method string,
	call func(StudentServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(StudentServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + ServiceName + "/" + method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(StudentServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// StudentServiceDesc describes the student service for grpc.Server.
var StudentServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StudentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateStudent", Handler: unaryHandler("CreateStudent", StudentServiceServer.CreateStudent)},
		{MethodName: "ListStudents", Handler: unaryHandler("ListStudents", StudentServiceServer.ListStudents)},
		{MethodName: "GetStudent", Handler: unaryHandler("GetStudent", StudentServiceServer.GetStudent)},
		{MethodName: "UpdateStudent", Handler: unaryHandler("UpdateStudent", StudentServiceServer.UpdateStudent)},
		{MethodName: "DeleteStudent", Handler: unaryHandler("DeleteStudent", StudentServiceServer.DeleteStudent)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "students/v1/student.proto",
}
