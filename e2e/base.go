package e2e

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"sentify/infrastructure/grpc/client"

	"github.com/goccy/go-json"
	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// BaseSuite talks to a running server, and optionally to its classifier sidecar.
// Scenarios are skipped when SERVER_ADDR is not set.
type BaseSuite struct {
	suite.Suite
	Config Config
	http   *http.Client
}

func (s *BaseSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.ServerAddr == "" {
		s.T().Skip("SERVER_ADDR not set, skipping end to end scenarios")
	}
	s.http = &http.Client{Timeout: 30 * time.Second}
}

func (s *BaseSuite) header(t *testing.T, name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)
}

// Call sends a JSON request and decodes the JSON answer into out when it is not nil.
func (s *BaseSuite) Call(name, method, path string, body any, out any) int {
	t := s.T()
	s.header(t, name)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, strings.TrimRight(s.Config.ServerAddr, "/")+path, reader)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := s.http.Do(req)
	s.Require().NoError(err, "Failed to reach "+s.Config.ServerAddr)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	t.Logf("HTTP %s %s [%d] in %v", method, path, resp.StatusCode, time.Since(start))
	if s.Config.DebugJSON {
		t.Logf("RESPONSE:\n%s", raw)
	}
	if out != nil && len(raw) > 0 {
		s.Require().NoError(json.Unmarshal(raw, out))
	}
	return resp.StatusCode
}

// GrpcConn opens a connection logging every call, with JSON bodies when E2E_DEBUG_JSON is enabled.
func (s *BaseSuite) GrpcConn(t *testing.T, name string, addr string) *grpc.ClientConn {
	s.header(t, name)

	marshaler := protojson.MarshalOptions{
		UseProtoNames:   true,
		Multiline:       true,
		EmitUnpopulated: true,
	}

	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
			start := time.Now()
			err := invoker(ctx, method, req, reply, cc, opts...)

			logBuilder := strings.Builder{}
			fmt.Fprintf(&logBuilder, "GRPC %s [%s] in %v", method, status.Code(err), time.Since(start))
			if s.Config.DebugJSON {
				fmt.Fprintln(&logBuilder, "\nREQUEST:")
				fmt.Fprintln(&logBuilder, marshaler.Format(req.(proto.Message)))
				if err != nil {
					fmt.Fprintln(&logBuilder, "ERROR:", err)
				} else {
					fmt.Fprintln(&logBuilder, "RESPONSE:")
					fmt.Fprintln(&logBuilder, marshaler.Format(reply.(proto.Message)))
				}
			}
			t.Log(logBuilder.String())
			return err
		}),
	)
	s.Require().NoError(err, "Failed to connect to gRPC server at "+addr)
	return conn
}

// WithClassifier provides a client of the classifier sidecar within a contextual test step.
func (s *BaseSuite) WithClassifier(name string, fn func(ctx context.Context, classifier *client.ClassifierClient)) {
	if s.Config.ClassifierAddr == "" {
		s.T().Skip("CLASSIFIER_ADDR not set")
	}
	conn := s.GrpcConn(s.T(), name, s.Config.ClassifierAddr)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fn(ctx, client.NewClassifierClient(conn))
}
