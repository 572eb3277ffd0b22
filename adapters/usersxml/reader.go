// Package usersxml reads employee names and avatars from the intranet
// users export.
package usersxml

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"presence-analyzer/domain/presence"
	apperrors "presence-analyzer/internal/errors"
	"presence-analyzer/ports"
)

type document struct {
	XMLName xml.Name `xml:"intranet"`
	Server  server   `xml:"server"`
	Users   []user   `xml:"users>user"`
}

type server struct {
	Host     string `xml:"host"`
	Port     string `xml:"port"`
	Protocol string `xml:"protocol"`
}

type user struct {
	ID     string `xml:"id,attr"`
	Avatar string `xml:"avatar"`
	Name   string `xml:"name"`
}

// Reader parses the users XML file from disk
type Reader struct {
	path   string
	logger ports.Logger
}

// NewReader creates a reader for the file at path
func NewReader(path string, logger ports.Logger) *Reader {
	return &Reader{path: path, logger: logger}
}

// ReadUsers returns the users in document order
func (r *Reader) ReadUsers(ctx context.Context) ([]presence.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(r.path)
	if err != nil {
		return nil, apperrors.DataSourceError(r.path, err)
	}
	defer f.Close()

	users, err := Decode(f)
	if err != nil {
		return nil, apperrors.DataSourceError(r.path, err)
	}
	r.logger.Info("[UsersXML] %s loaded: %d users", r.path, len(users))
	return users, nil
}

// Decode parses a users document. Users without an id are dropped.
func Decode(rd io.Reader) ([]presence.User, error) {
	var doc document
	if err := xml.NewDecoder(rd).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode users XML: %w", err)
	}

	base := doc.Server.baseURL()
	users := make([]presence.User, 0, len(doc.Users))
	for _, u := range doc.Users {
		id := strings.TrimSpace(u.ID)
		if id == "" {
			continue
		}
		users = append(users, presence.User{
			ID:        id,
			Name:      strings.TrimSpace(u.Name),
			AvatarURL: avatarURL(base, strings.TrimSpace(u.Avatar)),
		})
	}
	return users, nil
}

// baseURL is protocol://host, with the port only when it is not the
// protocol default
func (s server) baseURL() string {
	protocol := strings.TrimSpace(s.Protocol)
	if protocol == "" {
		protocol = "https"
	}
	host := strings.TrimSpace(s.Host)
	if host == "" {
		return ""
	}
	port := strings.TrimSpace(s.Port)
	if port != "" && !(protocol == "https" && port == "443") && !(protocol == "http" && port == "80") {
		host = host + ":" + port
	}
	return (&url.URL{Scheme: protocol, Host: host}).String()
}

func avatarURL(base, avatar string) string {
	if avatar == "" || base == "" || strings.HasPrefix(avatar, "http://") || strings.HasPrefix(avatar, "https://") {
		return avatar
	}
	if !strings.HasPrefix(avatar, "/") {
		avatar = "/" + avatar
	}
	return base + avatar
}
