// Package provision resolves warehouse connection parameters for a single
// request.
//
// Resolution is stateless: nothing is cached between calls, so a rotated
// session token or changed environment is honored on the very next request.
// The only side effects are file reads (session token, optional per-user
// credential file).
package provision

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// AuthMode selects how the warehouse session is authenticated.
type AuthMode string

// Supported auth modes. The two are mutually exclusive: token mode is used
// when the process runs on the managed container platform, credential mode
// everywhere else.
const (
	AuthToken      AuthMode = "token"
	AuthCredential AuthMode = "credential"
)

// DefaultTokenPath is the well-known location of the platform-injected
// session token inside the managed container.
const DefaultTokenPath = "/snowflake/session/token"

// defaultEnvPrefix is the prefix of the named environment values consulted
// during resolution, e.g. SNOWFLAKE_ACCOUNT.
const defaultEnvPrefix = "SNOWFLAKE_"

const defaultPort = 443

// Params is a fully-resolved set of warehouse connection parameters for one
// request-scoped session.
type Params struct {
	Mode AuthMode

	Account string
	Host    string
	Port    int
	User    string

	// Exactly one of the following carries auth material, per Mode.
	Token          string
	Password       string
	PrivateKeyPath string

	Database  string
	Schema    string
	Warehouse string
	Role      string
}

// Resolver produces Params for one request. Implementations must not retain
// credential material between calls.
type Resolver interface {
	Resolve(ctx context.Context) (Params, error)
}

// EnvResolver resolves Params from named environment values and, in
// credential mode, an optional per-user YAML credential file. Explicit
// environment values always win over file values.
type EnvResolver struct {
	containerized  bool
	tokenPath      string
	credentialFile string
	prefix         string
}

// Option applies a configuration option to the EnvResolver.
type Option func(*EnvResolver)

// WithContainerized marks the process as running on the managed container
// platform. The flag is resolved once at startup and injected here rather
// than re-probed per call.
func WithContainerized(v bool) Option {
	return func(r *EnvResolver) {
		r.containerized = v
	}
}

// WithTokenPath overrides the session token location.
func WithTokenPath(path string) Option {
	return func(r *EnvResolver) {
		if path != "" {
			r.tokenPath = path
		}
	}
}

// WithCredentialFile sets the optional per-user credential file consulted in
// credential mode.
func WithCredentialFile(path string) Option {
	return func(r *EnvResolver) {
		r.credentialFile = path
	}
}

// WithEnvPrefix overrides the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(r *EnvResolver) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// NewEnvResolver creates a resolver with the given options.
func NewEnvResolver(opts ...Option) *EnvResolver {
	r := &EnvResolver{
		tokenPath: DefaultTokenPath,
		prefix:    defaultEnvPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// rawParams is the intermediate shape koanf unmarshals into. Keys match
// both the env variable suffixes and the credential file fields.
type rawParams struct {
	Account        string `koanf:"account"`
	Host           string `koanf:"host"`
	Port           int    `koanf:"port"`
	User           string `koanf:"user"`
	Password       string `koanf:"password"`
	PrivateKeyPath string `koanf:"private_key_path"`
	Database       string `koanf:"database"`
	Schema         string `koanf:"schema"`
	Warehouse      string `koanf:"warehouse"`
	Role           string `koanf:"role"`
}

// Resolve produces a fresh Params set. Mode selection follows the injected
// containerized flag; see the package comment for the file-read semantics.
func (r *EnvResolver) Resolve(ctx context.Context) (Params, error) {
	if r.containerized {
		return r.resolveToken(ctx)
	}
	return r.resolveCredential(ctx)
}

// resolveToken builds token-mode Params. The token file is read on every
// call so platform-side rotation is picked up without a restart.
func (r *EnvResolver) resolveToken(_ context.Context) (Params, error) {
	raw, err := r.load("")
	if err != nil {
		return Params{}, err
	}

	token, err := os.ReadFile(r.tokenPath)
	if err != nil {
		return Params{}, fmt.Errorf("%w: read session token %s: %w", ErrCredential, r.tokenPath, err)
	}

	p := r.params(raw)
	p.Mode = AuthToken
	p.Token = strings.TrimSpace(string(token))
	if p.Host == "" {
		return Params{}, fmt.Errorf("%w: missing host", ErrConfiguration)
	}
	if p.Account == "" {
		return Params{}, fmt.Errorf("%w: missing account", ErrConfiguration)
	}
	return p, nil
}

// resolveCredential builds credential-mode Params with the defined
// precedence: explicit environment values override the credential file.
func (r *EnvResolver) resolveCredential(_ context.Context) (Params, error) {
	raw, err := r.load(r.credentialFile)
	if err != nil {
		return Params{}, err
	}

	p := r.params(raw)
	p.Mode = AuthCredential
	p.Password = raw.Password
	p.PrivateKeyPath = raw.PrivateKeyPath

	switch {
	case p.Account == "":
		return Params{}, fmt.Errorf("%w: missing account", ErrConfiguration)
	case p.User == "":
		return Params{}, fmt.Errorf("%w: missing user", ErrConfiguration)
	case p.Password == "" && p.PrivateKeyPath == "":
		return Params{}, fmt.Errorf("%w: missing password or private_key_path", ErrConfiguration)
	}
	return p, nil
}

// load layers the optional credential file under the environment values.
func (r *EnvResolver) load(credentialFile string) (rawParams, error) {
	k := koanf.New(".")

	if credentialFile != "" {
		if err := k.Load(file.Provider(credentialFile), yaml.Parser()); err != nil {
			return rawParams{}, fmt.Errorf("%w: credential file %s: %w", ErrConfiguration, credentialFile, err)
		}
	}

	prefix := r.prefix
	envProvider := env.Provider(prefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, prefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return rawParams{}, fmt.Errorf("%w: environment: %w", ErrConfiguration, err)
	}

	var raw rawParams
	if err := k.UnmarshalWithConf("", &raw, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return rawParams{}, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	return raw, nil
}

// params copies the mode-independent fields.
func (r *EnvResolver) params(raw rawParams) Params {
	p := Params{
		Account:   raw.Account,
		Host:      raw.Host,
		Port:      raw.Port,
		User:      raw.User,
		Database:  raw.Database,
		Schema:    raw.Schema,
		Warehouse: raw.Warehouse,
		Role:      raw.Role,
	}
	if p.Port == 0 {
		p.Port = defaultPort
	}
	return p
}
