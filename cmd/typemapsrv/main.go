// Command typemapsrv serves the typemap engine's lookup/attach facade
// over gRPC, the way cmd/lsp serves the language server over stdio: a
// thin main wiring a long-lived collaborator (here internal/tmrpc.Server)
// to its transport, grounded on the teacher's grpcServe/grpcServeAsync
// net.Listen+Serve pattern (internal/evaluator/builtins_grpc.go).
package main

import (
	"log"
	"net"
	"os"

	"google.golang.org/grpc"

	"github.com/funvibe/typemap/internal/ruleset"
	"github.com/funvibe/typemap/internal/tm"
	"github.com/funvibe/typemap/internal/tmconfig"
	"github.com/funvibe/typemap/internal/tmrpc"
)

func main() {
	log.SetFlags(0)

	args := os.Args[1:]
	addr := ":9090"
	var rulesPath string

	for len(args) > 0 && args[0] == "-debug" {
		tmconfig.IsDebugMode = true
		args = args[1:]
	}
	if len(args) >= 1 {
		addr = args[0]
	}
	if len(args) >= 2 {
		rulesPath = args[1]
	}

	store := tm.NewStore()
	if rulesPath != "" {
		if err := ruleset.Load(rulesPath, store); err != nil {
			log.Fatalf("typemapsrv: loading %s: %v", rulesPath, err)
		}
	}

	srv, err := tmrpc.NewServer(store)
	if err != nil {
		log.Fatalf("typemapsrv: %v", err)
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("typemapsrv: listen %s: %v", addr, err)
	}

	gs := grpc.NewServer()
	srv.Register(gs)

	log.Printf("typemapsrv: serving TypemapService on %s", addr)
	if err := gs.Serve(lis); err != nil {
		log.Fatalf("typemapsrv: serve: %v", err)
	}
}
