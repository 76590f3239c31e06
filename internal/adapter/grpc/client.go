package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// StudentServiceClient calls a remote student service over conn using the
// JSON codec.
type StudentServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewStudentServiceClient creates a new student service client
func NewStudentServiceClient(cc grpc.ClientConnInterface) *StudentServiceClient {
	return &StudentServiceClient{cc: cc}
}

func (c *StudentServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}

func (c *StudentServiceClient) CreateStudent(ctx context.Context, in *CreateStudentRequest, opts ...grpc.CallOption) (*Student, error) {
	out := new(Student)
	if err := c.invoke(ctx, "CreateStudent", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *StudentServiceClient) ListStudents(ctx context.Context, in *ListStudentsRequest, opts ...grpc.CallOption) (*ListStudentsResponse, error) {
	out := new(ListStudentsResponse)
	if err := c.invoke(ctx, "ListStudents", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *StudentServiceClient) GetStudent(ctx context.Context, in *GetStudentRequest, opts ...grpc.CallOption) (*Student, error) {
	out := new(Student)
	if err := c.invoke(ctx, "GetStudent", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *StudentServiceClient) UpdateStudent(ctx context.Context, in *UpdateStudentRequest, opts ...grpc.CallOption) (*Student, error) {
	out := new(Student)
	if err := c.invoke(ctx, "UpdateStudent", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *StudentServiceClient) DeleteStudent(ctx context.Context, in *DeleteStudentRequest, opts ...grpc.CallOption) (*DeleteStudentResponse, error) {
	out := new(DeleteStudentResponse)
	if err := c.invoke(ctx, "DeleteStudent", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
