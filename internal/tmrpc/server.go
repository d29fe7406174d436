// Package tmrpc exposes the typemap engine's lookup/attach facade over
// gRPC for out-of-process wrapper-generator front ends (SPEC_FULL.md §3):
// a remote transport for one of the external interfaces spec.md §6
// otherwise leaves to an in-process caller. Proto descriptors are parsed
// from an in-memory schema via protoreflect's desc/protoparse, and the
// gRPC service is wired up by hand-building a grpc.ServiceDesc around
// protoreflect/dynamic messages — no protoc-generated stubs — exactly the
// shape of the teacher's internal/evaluator/builtins_grpc.go
// grpcLoadProto/grpcRegister pair.
package tmrpc

import (
	"context"
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/protoparse"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"

	"github.com/funvibe/typemap/internal/ctype"
	"github.com/funvibe/typemap/internal/param"
	"github.com/funvibe/typemap/internal/tm"
	"github.com/funvibe/typemap/internal/tmconfig"
)

// parseSchema parses the in-memory proto schema and returns its service
// descriptor.
func parseSchema() (*desc.ServiceDescriptor, error) {
	parser := protoparse.Parser{
		Accessor: protoparse.FileContentsFromMap(map[string]string{schemaFilename: schemaProto}),
	}
	fds, err := parser.ParseFiles(schemaFilename)
	if err != nil {
		return nil, fmt.Errorf("tmrpc: parse schema: %w", err)
	}
	sd := fds[0].FindService("typemap.TypemapService")
	if sd == nil {
		return nil, fmt.Errorf("tmrpc: service typemap.TypemapService not found in schema")
	}
	return sd, nil
}

// Server wires a *tm.Store to a grpc.Server as the TypemapService.
type Server struct {
	store *tm.Store
	sd    *desc.ServiceDescriptor
}

// NewServer builds a Server backed by store. It parses the schema eagerly
// so a malformed schema fails fast at construction rather than on first
// request.
func NewServer(store *tm.Store) (*Server, error) {
	sd, err := parseSchema()
	if err != nil {
		return nil, err
	}
	return &Server{store: store, sd: sd}, nil
}

// Register builds the grpc.ServiceDesc for the TypemapService and
// registers it on gs.
func (s *Server) Register(gs *grpc.Server) {
	desc := &grpc.ServiceDesc{
		ServiceName: s.sd.GetFullyQualifiedName(),
		HandlerType: (*interface{})(nil),
		Metadata:    s.sd.GetFile().GetName(),
	}
	for _, method := range s.sd.GetMethods() {
		md := method
		desc.Methods = append(desc.Methods, grpc.MethodDesc{
			MethodName: md.GetName(),
			Handler: func(_ interface{}, ctx context.Context, dec func(interface{}) error, _ grpc.UnaryServerInterceptor) (interface{}, error) {
				return s.handle(ctx, md, dec)
			},
		})
	}
	gs.RegisterService(desc, s)
}

func (s *Server) handle(ctx context.Context, md *desc.MethodDescriptor, dec func(interface{}) error) (interface{}, error) {
	req := dynamic.NewMessage(md.GetInputType())
	if err := dec(req); err != nil {
		return nil, err
	}
	switch md.GetName() {
	case "Lookup":
		return s.handleLookup(md, req)
	case "Attach":
		return s.handleAttach(md, req)
	default:
		return nil, fmt.Errorf("tmrpc: unknown method %s", md.GetName())
	}
}

func (s *Server) handleLookup(md *desc.MethodDescriptor, req *dynamic.Message) (*dynamic.Message, error) {
	op, _ := req.TryGetFieldByName("op")
	typ, _ := req.TryGetFieldByName("type")
	pname, _ := req.TryGetFieldByName("pname")
	lname, _ := req.TryGetFieldByName("lname")
	source, _ := req.TryGetFieldByName("source")
	target, _ := req.TryGetFieldByName("target")

	code, matched := s.store.Lookup(
		toStr(op), ctype.T(toStr(typ)), toStr(pname), toStr(lname), toStr(source), toStr(target), nil,
	)

	resp := dynamic.NewMessage(md.GetOutputType())
	resp.SetFieldByName("matched", matched)
	resp.SetFieldByName("code", code)
	return resp, nil
}

func (s *Server) handleAttach(md *desc.MethodDescriptor, req *dynamic.Message) (*dynamic.Message, error) {
	op, _ := req.TryGetFieldByName("op")
	rawParms, _ := req.TryGetFieldByName("parms")

	var nodes []*param.Param
	if list, ok := rawParms.([]interface{}); ok {
		for _, item := range list {
			pm, ok := item.(*dynamic.Message)
			if !ok {
				continue
			}
			t, _ := pm.TryGetFieldByName("type")
			n, _ := pm.TryGetFieldByName("name")
			ln, _ := pm.TryGetFieldByName("lname")
			p := param.New(ctype.T(toStr(t)), toStr(n))
			p.LName = toStr(ln)
			nodes = append(nodes, p)
		}
	}
	head := param.FromSlice(nodes)

	opStr := toStr(op)
	s.store.Attach(opStr, head, nil)

	resp := dynamic.NewMessage(md.GetOutputType())
	groupsField := md.GetOutputType().FindFieldByName("groups")

	key := tmconfig.MethodKeyPrefix + opStr
	pos := 1
	cur := head
	for cur != nil {
		code, ok := cur.GetAttr(key)
		if !ok {
			pos++
			cur = cur.Next
			continue
		}
		next, _ := s.store.NextLink(cur, opStr)
		nmatch := 0
		for p := cur; p != next; p = p.Next {
			nmatch++
		}

		group := dynamic.NewMessage(groupsField.GetMessageType())
		group.SetFieldByName("first_index", int32(pos))
		group.SetFieldByName("code", code)
		group.SetFieldByName("nmatch", int32(nmatch))
		resp.AddRepeatedFieldByName("groups", group)

		pos += nmatch
		cur = next
	}
	return resp, nil
}

func toStr(v interface{}) string {
	s, _ := v.(string)
	return s
}
