package resolver

import "go.trai.ch/shift/internal/core/domain"

type migrationKey struct {
	pkg string
	id  string
}

// state is the accumulator of a single resolution pass.
// It is only ever touched by the traversal goroutine.
type state struct {
	resolved   map[string]domain.ResolvedPackage
	requested  map[string]domain.Version
	proposals  map[string]domain.Version
	migrations []domain.MigrationRecord
	seen       map[migrationKey]struct{}
}

func newState() *state {
	return &state{
		resolved:  make(map[string]domain.ResolvedPackage),
		requested: make(map[string]domain.Version),
		proposals: make(map[string]domain.Version),
		seen:      make(map[migrationKey]struct{}),
	}
}

// satisfied reports whether name was already resolved or requested at version or higher.
func (s *state) satisfied(name string, version domain.Version) bool {
	if r, ok := s.resolved[name]; ok && r.Version.AtLeast(version) {
		return true
	}
	// A version between the recorded answer and an earlier request is not fetched again.
	if v, ok := s.requested[name]; ok && v.AtLeast(version) {
		return true
	}
	return false
}

func (s *state) request(name string, version domain.Version) {
	s.requested[name] = domain.MaxVersion(s.requested[name], version)
}

// propose returns the version to request for name, taking earlier proposals into account.
func (s *state) propose(name string, version domain.Version) domain.Version {
	if prev, ok := s.proposals[name]; ok {
		version = domain.MaxVersion(prev, version)
	}
	s.proposals[name] = version
	return version
}

// record stores the fetched version of name. A recorded version is never lowered;
// the flag follows the latest writer.
func (s *state) record(name string, version domain.Version, alwaysAdd bool) {
	if prev, ok := s.resolved[name]; ok {
		version = domain.MaxVersion(prev.Version, version)
	}
	s.resolved[name] = domain.ResolvedPackage{Version: version, AlwaysAddToPackageJSON: alwaysAdd}
}

func (s *state) markAlwaysAdd(name string) {
	if r, ok := s.resolved[name]; ok {
		r.AlwaysAddToPackageJSON = true
		s.resolved[name] = r
	}
}

func (s *state) addMigration(rec domain.MigrationRecord) {
	key := migrationKey{pkg: rec.Package, id: rec.Name}
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.migrations = append(s.migrations, rec)
}

// result projects the accumulated state into a fresh domain.Result.
func (s *state) result() *domain.Result {
	res := &domain.Result{
		PackageJSON: make(map[string]domain.ResolvedPackage, len(s.resolved)),
		Migrations:  make([]domain.MigrationRecord, len(s.migrations)),
	}
	for name, pkg := range s.resolved {
		res.PackageJSON[name] = pkg
	}
	copy(res.Migrations, s.migrations)
	return res
}
