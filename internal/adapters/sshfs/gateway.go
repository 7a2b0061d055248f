// Package sshfs serves a corpus from a remote host over SSH/SFTP.
// Remote reads are never cached by the engine.
package sshfs

import (
	"context"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"docgraph/internal/domain"
	"docgraph/internal/ports"
)

// Gateway implements ports.FileSystemGateway over an SFTP session
type Gateway struct {
	conn      *ssh.Client
	client    *sftp.Client
	root      string
	sessionID string
}

var _ ports.FileSystemGateway = (*Gateway)(nil)

// Config describes a remote corpus target
type Config struct {
	User string
	Host string // host or host:port; port defaults to 22
	Root string // corpus root on the remote host

	Auth            []ssh.AuthMethod
	HostKeyCallback ssh.HostKeyCallback
}

// ParseTarget splits a user@host:/path target string
func ParseTarget(target string) (Config, error) {
	at := strings.Index(target, "@")
	colon := strings.Index(target, ":")
	if at <= 0 || colon <= at+1 || colon == len(target)-1 {
		return Config{}, fmt.Errorf("invalid ssh target %q: expected user@host:/path", target)
	}
	return Config{
		User: target[:at],
		Host: target[at+1 : colon],
		Root: target[colon+1:],
	}, nil
}

// Dial connects to the remote host and opens an SFTP session
func Dial(cfg Config) (*Gateway, error) {
	host := cfg.Host
	if !strings.Contains(host, ":") {
		host += ":22"
	}

	hostKey := cfg.HostKeyCallback
	if hostKey == nil {
		hostKey = ssh.InsecureIgnoreHostKey()
	}

	auth := cfg.Auth
	if auth == nil {
		auth = DefaultAuth()
	}

	conn, err := ssh.Dial("tcp", host, &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            auth,
		HostKeyCallback: hostKey,
	})
	if err != nil {
		return nil, fmt.Errorf("ssh dial %s: %w", host, err)
	}

	client, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("sftp session: %w", err)
	}

	return &Gateway{
		conn:      conn,
		client:    client,
		root:      cfg.Root,
		sessionID: cfg.User + "@" + cfg.Host,
	}, nil
}

// SessionID identifies the remote session this gateway is scoped to
func (g *Gateway) SessionID() string {
	return g.sessionID
}

// Close tears down the SFTP session and the SSH connection
func (g *Gateway) Close() error {
	if err := g.client.Close(); err != nil {
		g.conn.Close()
		return err
	}
	return g.conn.Close()
}

// ReadDir lists a corpus-relative directory on the remote host
func (g *Gateway) ReadDir(_ context.Context, rel string) ([]ports.DirEntry, error) {
	infos, err := g.client.ReadDir(g.abs(rel))
	if err != nil {
		return nil, err
	}

	out := make([]ports.DirEntry, 0, len(infos))
	for _, info := range infos {
		out = append(out, ports.DirEntry{
			Name:  info.Name(),
			Path:  joinRel(rel, info.Name()),
			IsDir: info.IsDir(),
		})
	}
	return out, nil
}

// ReadFile returns a remote file's content
func (g *Gateway) ReadFile(_ context.Context, rel string) (string, error) {
	f, err := g.client.Open(g.abs(rel))
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	if _, err := f.WriteTo(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Stat returns a remote file's staleness fingerprint
func (g *Gateway) Stat(_ context.Context, rel string) (domain.Fingerprint, error) {
	info, err := g.client.Stat(g.abs(rel))
	if err != nil {
		return domain.Fingerprint{}, err
	}
	return fingerprint(info), nil
}

// Remote reports true: results from this gateway are never cached
func (g *Gateway) Remote() bool {
	return true
}

func (g *Gateway) abs(rel string) string {
	if rel == "" || rel == "." {
		return g.root
	}
	return path.Join(g.root, rel)
}

func joinRel(dir, name string) string {
	if dir == "" || dir == "." {
		return name
	}
	return strings.TrimSuffix(dir, "/") + "/" + name
}

func fingerprint(info os.FileInfo) domain.Fingerprint {
	return domain.Fingerprint{
		Size:    info.Size(),
		ModTime: info.ModTime().UnixNano(),
	}
}
