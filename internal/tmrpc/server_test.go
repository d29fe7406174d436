package tmrpc

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/jhump/protoreflect/dynamic"
	"github.com/jhump/protoreflect/dynamic/grpcdynamic"

	"github.com/funvibe/typemap/internal/ctype"
	"github.com/funvibe/typemap/internal/param"
	"github.com/funvibe/typemap/internal/tm"
)

func dialServer(t *testing.T, store *tm.Store) (*grpcdynamic.Stub, func()) {
	t.Helper()

	srv, err := NewServer(store)
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}

	lis := bufconn.Listen(1 << 16)
	gs := grpc.NewServer()
	srv.Register(gs)
	go gs.Serve(lis)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	stub := grpcdynamic.NewStub(conn)
	return &stub, func() {
		conn.Close()
		gs.Stop()
	}
}

func TestLookupOverGRPC(t *testing.T) {
	store := tm.NewStore()
	store.Register("in", param.New(ctype.T("int"), ""), "$1 = PyInt_AsLong($input);", nil, nil)

	sd, err := parseSchema()
	if err != nil {
		t.Fatalf("parseSchema error: %v", err)
	}
	md := sd.FindMethodByName("Lookup")

	stub, closeFn := dialServer(t, store)
	defer closeFn()

	req := dynamic.NewMessage(md.GetInputType())
	req.SetFieldByName("op", "in")
	req.SetFieldByName("type", "int")
	req.SetFieldByName("pname", "x")
	req.SetFieldByName("lname", "x")
	req.SetFieldByName("source", "argv[0]")
	req.SetFieldByName("target", "x")

	respMsg, err := stub.InvokeRpc(context.Background(), md, req)
	if err != nil {
		t.Fatalf("InvokeRpc error: %v", err)
	}
	resp := respMsg.(*dynamic.Message)

	matched, _ := resp.TryGetFieldByName("matched")
	if ok, _ := matched.(bool); !ok {
		t.Fatalf("expected matched=true, got %#v", matched)
	}
	code, _ := resp.TryGetFieldByName("code")
	if code != "x = PyInt_AsLong($input);" {
		t.Fatalf("unexpected code: %q", code)
	}
}

func TestAttachOverGRPC(t *testing.T) {
	store := tm.NewStore()
	store.Register("in", param.New(ctype.T("int"), ""), "$1 = PyInt_AsLong($input);", nil, nil)

	sd, err := parseSchema()
	if err != nil {
		t.Fatalf("parseSchema error: %v", err)
	}
	md := sd.FindMethodByName("Attach")

	stub, closeFn := dialServer(t, store)
	defer closeFn()

	req := dynamic.NewMessage(md.GetInputType())
	req.SetFieldByName("op", "in")

	parmField := md.GetInputType().FindFieldByName("parms")
	p := dynamic.NewMessage(parmField.GetMessageType())
	p.SetFieldByName("type", "int")
	p.SetFieldByName("name", "x")
	p.SetFieldByName("lname", "x")
	req.AddRepeatedFieldByName("parms", p)

	respMsg, err := stub.InvokeRpc(context.Background(), md, req)
	if err != nil {
		t.Fatalf("InvokeRpc error: %v", err)
	}
	resp := respMsg.(*dynamic.Message)

	groupsField := md.GetOutputType().FindFieldByName("groups")
	groups, _ := resp.TryGetFieldByName("groups")
	list, ok := groups.([]interface{})
	if !ok || len(list) != 1 {
		t.Fatalf("expected one attached group, got %#v", groups)
	}
	group := list[0].(*dynamic.Message)
	_ = groupsField
	nmatch, _ := group.TryGetFieldByName("nmatch")
	if n, _ := nmatch.(int32); n != 1 {
		t.Fatalf("nmatch = %v, want 1", nmatch)
	}
}
