package tmrpc

// schemaProto is the in-memory proto3 schema for the remote lookup/attach
// facade (spec §6 "External interfaces", SPEC_FULL.md §3). It is parsed
// at startup via protoparse.Parser.Accessor — no protoc-generated stubs
// are required, mirroring the teacher's grpcLoadProto/grpcRegister
// pattern (internal/evaluator/builtins_grpc.go) of loading proto
// descriptors dynamically and serving them with hand-built
// grpc.ServiceDesc/dynamic.Message plumbing.
const schemaProto = `
syntax = "proto3";
package typemap;

message LookupRequest {
  string op = 1;
  string type = 2;
  string pname = 3;
  string lname = 4;
  string source = 5;
  string target = 6;
}

message LookupResponse {
  bool matched = 1;
  string code = 2;
}

message ParamArg {
  string type = 1;
  string name = 2;
  string lname = 3;
}

message AttachRequest {
  string op = 1;
  repeated ParamArg parms = 2;
}

message AttachedGroup {
  int32 first_index = 1;
  string code = 2;
  int32 nmatch = 3;
}

message AttachResponse {
  repeated AttachedGroup groups = 1;
}

service TypemapService {
  rpc Lookup(LookupRequest) returns (LookupResponse);
  rpc Attach(AttachRequest) returns (AttachResponse);
}
`

const schemaFilename = "typemap.proto"
