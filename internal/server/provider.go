package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jimezsa/horizons/internal/models"
	"github.com/jimezsa/horizons/internal/network"
	"github.com/jimezsa/horizons/internal/snapshot"
)

// Provider supplies the jobs the dashboard shows. Both implementations
// cache: the file provider keys on mtime, the remote one on a TTL.
type Provider interface {
	Jobs(ctx context.Context) ([]models.Job, error)
}

// FileProvider reads the local snapshot, re-parsing only when the file
// changes on disk. A missing file is an empty dashboard, not an error.
type FileProvider struct {
	Path string

	mu     sync.Mutex
	mtime  time.Time
	cached []models.Job
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{Path: path}
}

func (p *FileProvider) Jobs(ctx context.Context) ([]models.Job, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	info, err := os.Stat(p.Path)
	if err != nil {
		if os.IsNotExist(err) {
			p.cached = nil
			p.mtime = time.Time{}
			return nil, nil
		}
		return nil, err
	}

	if !info.ModTime().Equal(p.mtime) || p.cached == nil {
		jobs, err := snapshot.Load(p.Path)
		if err != nil {
			return nil, err
		}
		p.cached = jobs
		p.mtime = info.ModTime()
	}
	return p.cached, nil
}

// RemoteProvider pulls the snapshot from a raw URL (e.g. the repo's
// published data file) so the dashboard updates without redeploys. A
// cache-busting query parameter defeats CDN caching; results are held for
// TTL before refetching.
type RemoteProvider struct {
	URL    string
	TTL    time.Duration
	Client *network.Client

	mu      sync.Mutex
	fetched time.Time
	cached  []models.Job
}

func NewRemoteProvider(url string, ttl time.Duration, client *network.Client) *RemoteProvider {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RemoteProvider{URL: url, TTL: ttl, Client: client}
}

func (p *RemoteProvider) Jobs(ctx context.Context) ([]models.Job, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != nil && time.Since(p.fetched) < p.TTL {
		return p.cached, nil
	}

	sep := "?"
	if strings.Contains(p.URL, "?") {
		sep = "&"
	}
	target := p.URL + sep + "t=" + strconv.FormatInt(time.Now().Unix(), 10)

	resp, err := p.Client.Get(ctx, target, map[string]string{"cache-control": "no-cache"})
	if err != nil {
		return p.stale(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return p.stale(fmt.Errorf("http %d", resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return p.stale(err)
	}

	var jobs []models.Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return p.stale(err)
	}

	p.cached = jobs
	p.fetched = time.Now()
	return jobs, nil
}

// stale serves the last good payload when a refresh fails, surfacing the
// error only when there is nothing to fall back to.
func (p *RemoteProvider) stale(err error) ([]models.Job, error) {
	if p.cached != nil {
		return p.cached, nil
	}
	return nil, err
}
