// Package rpc exposes the chromecookie client as a JSON-RPC 2.0 service,
// either line-delimited over stdio for editor plugins or over HTTP behind a
// bearer token.
package rpc

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"io"
	"net/http"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/creachadair/jrpc2/handler"
	"github.com/creachadair/jrpc2/jhttp"

	"github.com/warpdl/chromecookie/common"
	"github.com/warpdl/chromecookie/pkg/chromecookie"
	"github.com/warpdl/chromecookie/pkg/logger"
	"github.com/warpdl/chromecookie/pkg/oscrypt"
)

// Config holds the dependencies of a Server.
type Config struct {
	Client    *chromecookie.Client
	Log       logger.Logger
	Version   string
	Commit    string
	BuildType string
}

// Server dispatches JSON-RPC methods to a chromecookie.Client.
type Server struct {
	client    *chromecookie.Client
	log       logger.Logger
	version   string
	commit    string
	buildType string
}

// NewServer creates a Server. A nil Client means chromecookie.New().
func NewServer(cfg *Config) *Server {
	s := &Server{
		client:    cfg.Client,
		log:       cfg.Log,
		version:   cfg.Version,
		commit:    cfg.Commit,
		buildType: cfg.BuildType,
	}
	if s.client == nil {
		s.client = chromecookie.New()
	}
	if s.log == nil {
		s.log = logger.NewNopLogger()
	}
	return s
}

// Methods returns the method table served by s.
func (s *Server) Methods() handler.Map {
	return handler.Map{
		common.MethodSystemVersion:  handler.New(s.systemGetVersion),
		common.MethodCookieDecrypt:  handler.New(s.cookieDecrypt),
		common.MethodCookieGet:      handler.New(s.cookieGet),
		common.MethodCookieListHost: handler.New(s.cookieListHost),
		common.MethodCookieList:     handler.New(s.cookieList),
		common.MethodKeyMaster:      handler.New(s.keyMaster),
		common.MethodKeyPassword:    handler.New(s.keyPassword),
	}
}

// ServeStdio serves requests read line by line from r, writing responses
// to w, until r is exhausted.
func (s *Server) ServeStdio(r io.Reader, w io.WriteCloser) error {
	srv := jrpc2.NewServer(s.Methods(), &jrpc2.ServerOptions{
		Logger: func(text string) { s.log.Info("rpc: %s", text) },
	})
	s.log.Info("serving JSON-RPC on stdio")
	err := srv.Start(channel.Line(r, w)).Wait()
	if err == nil || errors.Is(err, io.EOF) || channel.IsErrClosing(err) {
		return nil
	}
	return err
}

// HTTPHandler returns an http.Handler serving the methods as JSON-RPC over
// HTTP POST, requiring "Authorization: Bearer <token>". The returned func
// releases the bridge.
func (s *Server) HTTPHandler(token string) (http.Handler, func()) {
	bridge := jhttp.NewBridge(s.Methods(), nil)
	return requireToken(token, bridge), func() { bridge.Close() }
}

func (s *Server) password(ctx context.Context, p string) (string, error) {
	if p != "" {
		return p, nil
	}
	return s.client.MasterPassword(ctx)
}

func (s *Server) systemGetVersion(_ context.Context) (*common.VersionInfo, error) {
	return &common.VersionInfo{
		Version:   s.version,
		Commit:    s.commit,
		BuildType: s.buildType,
	}, nil
}

func (s *Server) cookieDecrypt(ctx context.Context, p *common.DecryptParams) (*common.DecryptResponse, error) {
	envelope, err := base64.StdEncoding.DecodeString(p.Value)
	if err != nil {
		return nil, invalidParams("value must be base64: " + err.Error())
	}
	scheme := s.client.Scheme()
	if p.Scheme != "" {
		if scheme, err = oscrypt.ParseScheme(p.Scheme); err != nil {
			return nil, invalidParams(err.Error())
		}
	}
	password, err := s.password(ctx, p.Password)
	if err != nil {
		return nil, toRPCError(err)
	}
	value, ok, err := chromecookie.DecryptCookie(envelope, password, scheme)
	if err != nil {
		return nil, toRPCError(err)
	}
	return &common.DecryptResponse{Value: value, Found: ok}, nil
}

func (s *Server) cookieGet(ctx context.Context, p *common.GetParams) (*common.GetResponse, error) {
	if p.Path == "" || p.Host == "" || p.Name == "" {
		return nil, invalidParams("missing required params: path, host, name")
	}
	password, err := s.password(ctx, p.Password)
	if err != nil {
		return nil, toRPCError(err)
	}
	value, ok, err := s.client.CookieValue(ctx, p.Path, password, p.Host, p.Name)
	if err != nil {
		return nil, toRPCError(err)
	}
	return &common.GetResponse{Value: value, Found: ok}, nil
}

func (s *Server) cookieListHost(ctx context.Context, p *common.ListParams) (*common.ListResponse, error) {
	if p.Path == "" || p.Host == "" {
		return nil, invalidParams("missing required params: path, host")
	}
	password, err := s.password(ctx, p.Password)
	if err != nil {
		return nil, toRPCError(err)
	}
	records, err := s.client.CookiesForHost(ctx, p.Path, password, p.Host)
	if err != nil {
		return nil, toRPCError(err)
	}
	return listResponse(records), nil
}

func (s *Server) cookieList(ctx context.Context, p *common.ListParams) (*common.ListResponse, error) {
	if p.Path == "" {
		return nil, invalidParams("missing required param: path")
	}
	password, err := s.password(ctx, p.Password)
	if err != nil {
		return nil, toRPCError(err)
	}
	records, err := s.client.Cookies(ctx, p.Path, password)
	if err != nil {
		return nil, toRPCError(err)
	}
	return listResponse(records), nil
}

func listResponse(records []chromecookie.CookieRecord) *common.ListResponse {
	if records == nil {
		records = []chromecookie.CookieRecord{}
	}
	return &common.ListResponse{Cookies: records, Header: chromecookie.BuildCookieHeader(records)}
}

func (s *Server) keyMaster(ctx context.Context, p *common.MasterKeyParams) (*common.MasterKeyResponse, error) {
	key, err := s.client.MasterKey(ctx, p.LocalStatePath)
	if err != nil {
		return nil, toRPCError(err)
	}
	return &common.MasterKeyResponse{Key: hex.EncodeToString(key[:])}, nil
}

func (s *Server) keyPassword(ctx context.Context) (*common.PasswordResponse, error) {
	password, err := s.client.MasterPassword(ctx)
	if err != nil {
		return nil, toRPCError(err)
	}
	return &common.PasswordResponse{Password: password, Source: s.client.Source().Name()}, nil
}
