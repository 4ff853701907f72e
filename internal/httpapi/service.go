package httpapi

import (
	"errors"
	"sort"

	"ovlink/internal/finder"
	"ovlink/internal/linking"
	"ovlink/pkg/ovsys"
	"ovlink/pkg/types"
)

// BinderService serves the diagnostics API from a Binder and the finder
// cache it binds through.
type BinderService struct {
	binder *linking.Binder
	cache  *finder.Cache
	getenv func(string) string
}

// NewService wires a binder and cache. getenv feeds the /env report and
// should be the same lookup the cache's finder uses.
func NewService(b *linking.Binder, c *finder.Cache, getenv func(string) string) *BinderService {
	return &BinderService{binder: b, cache: c, getenv: getenv}
}

func (s *BinderService) Status() types.BindStatus { return ovsys.Report(s.binder, true) }

func (s *BinderService) Ready() bool {
	_, ok := s.binder.Library()
	return ok
}

func (s *BinderService) Bind() (types.BindStatus, error) {
	_, err := s.binder.Bind()
	return ovsys.Report(s.binder, err == nil), err
}

func (s *BinderService) Unbind() (types.BindStatus, error) {
	err := s.binder.Unbind()
	return ovsys.Report(s.binder, false), err
}

// Find runs a fresh search; the cache is only consulted for its finder so
// the answer reflects the current filesystem.
func (s *BinderService) Find(name string) types.FindResponse {
	resp, _ := FindReport(s.cache.Finder(), name)
	return resp
}

func (s *BinderService) Env() types.EnvReport {
	return EnvReport(s.cache.Finder(), s.getenv)
}

// FindReport runs one search and renders the result along with the search
// error, if any.
func FindReport(f *finder.Finder, name string) (types.FindResponse, error) {
	resp := types.FindResponse{Library: name, File: f.Platform().FileName(name)}
	path, err := f.Find(name)
	if err == nil {
		resp.Found, resp.Path = true, path
		return resp, nil
	}
	resp.Error = err.Error()
	var nf *finder.NotFoundError
	if errors.As(err, &nf) {
		resp.Probed = probes(nf.Probed)
	}
	return resp, err
}

// EnvReport lists the variables the finder reads and the directories it
// would probe.
func EnvReport(f *finder.Finder, getenv func(string) string) types.EnvReport {
	keys := []string{
		finder.EnvBuildDir,
		finder.EnvInstallDir,
		finder.EnvIntelDir,
		finder.EnvPluginsXML,
		f.Platform().LibraryPathVar(),
	}
	sort.Strings(keys)
	vars := map[string]string{}
	if getenv != nil {
		for _, k := range keys {
			if v := getenv(k); v != "" {
				vars[k] = v
			}
		}
	}
	return types.EnvReport{
		Platform:   f.Platform().Name(),
		Vars:       vars,
		Candidates: probes(f.Candidates()),
	}
}

func probes(cs []finder.Candidate) []types.Probe {
	out := make([]types.Probe, 0, len(cs))
	for _, c := range cs {
		out = append(out, types.Probe{Source: c.Source.String(), Dir: c.Dir})
	}
	return out
}
