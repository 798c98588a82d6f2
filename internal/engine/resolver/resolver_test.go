package resolver_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shift/internal/adapters/telemetry"
	"go.trai.ch/shift/internal/core/domain"
	"go.trai.ch/shift/internal/core/ports"
	"go.trai.ch/shift/internal/core/ports/mocks"
	"go.trai.ch/shift/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

// registry is an in-memory metadata provider. Unknown packages are reported as not found.
type registry struct {
	mu       sync.Mutex
	packages map[string]func(version domain.Version) *domain.PackageMetadata
	errs     map[string]error
	calls    []string
}

func (r *registry) FetchMetadata(
	_ context.Context,
	name string,
	version domain.Version,
) (*domain.PackageMetadata, error) {
	r.mu.Lock()
	r.calls = append(r.calls, name+"@"+version.String())
	r.mu.Unlock()

	if err, ok := r.errs[name]; ok {
		return nil, err
	}
	fn, ok := r.packages[name]
	if !ok {
		return nil, nil
	}
	return fn(version), nil
}

func (r *registry) fetched() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// installed is an oracle backed by a name to version map.
type installed map[string]string

func (i installed) InstalledVersion(name string) (domain.Version, bool) {
	s, ok := i[name]
	if !ok {
		return domain.Version{}, false
	}
	return domain.CoerceVersion(s), true
}

func v(s string) domain.Version {
	return domain.CoerceVersion(s)
}

// echo answers with the requested version and nothing else.
func echo(version domain.Version) *domain.PackageMetadata {
	return &domain.PackageMetadata{Version: version}
}

// fixed always answers with a copy of metadata.
func fixed(metadata domain.PackageMetadata) func(domain.Version) *domain.PackageMetadata {
	return func(domain.Version) *domain.PackageMetadata {
		out := metadata
		return &out
	}
}

func bucket(version string, targets ...domain.UpdateTarget) domain.UpdateBucket {
	return domain.UpdateBucket{ID: "version" + version, Version: v(version), Packages: targets}
}

func target(name, version string) domain.UpdateTarget {
	return domain.UpdateTarget{Name: name, Version: v(version)}
}

func newResolver(t *testing.T) *resolver.Resolver {
	t.Helper()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	return resolver.NewResolver(telemetry.NewNoop(), log)
}

func TestResolve_PatchToNewVersion(t *testing.T) {
	reg := &registry{packages: map[string]func(domain.Version) *domain.PackageMetadata{
		"mypackage": echo,
	}}

	res, err := newResolver(t).Resolve(context.Background(), "mypackage", "2.0.0", installed{"mypackage": "1.0.0"}, reg)
	require.NoError(t, err)

	assert.Equal(t, map[string]domain.ResolvedPackage{
		"mypackage": {Version: v("2.0.0")},
	}, res.PackageJSON)
	assert.Empty(t, res.Migrations)
}

func TestResolve_RootVersionIsCoerced(t *testing.T) {
	reg := &registry{packages: map[string]func(domain.Version) *domain.PackageMetadata{
		"mypackage": echo,
	}}

	res, err := newResolver(t).Resolve(context.Background(), "mypackage", "2.1", installed{}, reg)
	require.NoError(t, err)

	assert.Equal(t, []string{"mypackage@2.1.0"}, reg.fetched())
	assert.Equal(t, v("2.1.0"), res.PackageJSON["mypackage"].Version)
}

func TestResolve_CollectsUpsertsRecursively(t *testing.T) {
	reg := &registry{packages: map[string]func(domain.Version) *domain.PackageMetadata{
		"parent": fixed(domain.PackageMetadata{
			Version: v("2.0.0"),
			PackageJSONUpdates: []domain.UpdateBucket{
				bucket("2.0.0",
					target("child", "2.0.0"),
					domain.UpdateTarget{Name: "newChild", Version: v("3.0.0"), AlwaysAddToPackageJSON: true},
				),
			},
		}),
		"child": fixed(domain.PackageMetadata{
			Version: v("2.0.0"),
			PackageJSONUpdates: []domain.UpdateBucket{
				bucket("2.0.0", target("grandchild", "3.0.0")),
			},
		}),
		"newChild":   fixed(domain.PackageMetadata{Version: v("2.0.0")}),
		"grandchild": echo,
	}}
	oracle := installed{"parent": "1.0.0", "child": "1.0.0", "grandchild": "1.0.0"}

	res, err := newResolver(t).Resolve(context.Background(), "parent", "2.0.0", oracle, reg)
	require.NoError(t, err)

	assert.Equal(t, map[string]domain.ResolvedPackage{
		"parent":     {Version: v("2.0.0")},
		"child":      {Version: v("2.0.0")},
		"grandchild": {Version: v("3.0.0")},
		"newChild":   {Version: v("2.0.0"), AlwaysAddToPackageJSON: true},
	}, res.PackageJSON)
	assert.Empty(t, res.Migrations)
}

func TestResolve_AlwaysAddFollowsLastWriter(t *testing.T) {
	flagged := func(name, version string) domain.UpdateTarget {
		return domain.UpdateTarget{Name: name, Version: v(version), AlwaysAddToPackageJSON: true}
	}

	tests := []struct {
		name    string
		targets []domain.UpdateTarget
		want    domain.ResolvedPackage
		fetched []string
	}{
		{
			name:    "flagged target below resolved version re-marks it",
			targets: []domain.UpdateTarget{target("dep", "3.0.0"), flagged("dep", "2.0.0")},
			want:    domain.ResolvedPackage{Version: v("3.0.0"), AlwaysAddToPackageJSON: true},
			fetched: []string{"parent@2.0.0", "dep@3.0.0"},
		},
		{
			name:    "unflagged target at higher version clears it",
			targets: []domain.UpdateTarget{flagged("dep", "2.0.0"), target("dep", "3.0.0")},
			want:    domain.ResolvedPackage{Version: v("3.0.0")},
			fetched: []string{"parent@2.0.0", "dep@2.0.0", "dep@3.0.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := &registry{packages: map[string]func(domain.Version) *domain.PackageMetadata{
				"parent": fixed(domain.PackageMetadata{
					Version:            v("2.0.0"),
					PackageJSONUpdates: []domain.UpdateBucket{bucket("2.0.0", tt.targets...)},
				}),
				"dep": echo,
			}}

			res, err := newResolver(t).Resolve(context.Background(), "parent", "2.0.0", installed{"parent": "1.0.0"}, reg)
			require.NoError(t, err)

			assert.Equal(t, tt.want, res.PackageJSON["dep"])
			assert.ElementsMatch(t, tt.fetched, reg.fetched())
		})
	}
}

func TestResolve_StopsOnCycles(t *testing.T) {
	reg := &registry{packages: map[string]func(domain.Version) *domain.PackageMetadata{
		"parent": fixed(domain.PackageMetadata{
			Version:            v("2.0.0"),
			PackageJSONUpdates: []domain.UpdateBucket{bucket("2.0.0", target("child", "2.0.0"))},
		}),
		"child": fixed(domain.PackageMetadata{
			Version:            v("2.0.0"),
			PackageJSONUpdates: []domain.UpdateBucket{bucket("2.0.0", target("parent", "2.0.0"))},
		}),
	}}
	oracle := installed{"parent": "1.0.0", "child": "1.0.0"}

	res, err := newResolver(t).Resolve(context.Background(), "parent", "2.0.0", oracle, reg)
	require.NoError(t, err)

	assert.Equal(t, map[string]domain.ResolvedPackage{
		"parent": {Version: v("2.0.0")},
		"child":  {Version: v("2.0.0")},
	}, res.PackageJSON)
	assert.Equal(t, []string{"parent@2.0.0", "child@2.0.0"}, reg.fetched())
}

func TestResolve_NewestProposalWins(t *testing.T) {
	tests := []struct {
		name   string
		first  string
		second string
	}{
		{name: "ascending", first: "3.0.0", second: "4.0.0"},
		{name: "descending", first: "4.0.0", second: "3.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := &registry{packages: map[string]func(domain.Version) *domain.PackageMetadata{
				"parent": fixed(domain.PackageMetadata{
					Version: v("2.0.0"),
					PackageJSONUpdates: []domain.UpdateBucket{
						bucket("2.0.0", target("child1", "2.0.0"), target("child2", "2.0.0")),
					},
				}),
				"child1": fixed(domain.PackageMetadata{
					Version:            v("2.0.0"),
					PackageJSONUpdates: []domain.UpdateBucket{bucket("2.0.0", target("grandchild", tt.first))},
				}),
				"child2": fixed(domain.PackageMetadata{
					Version:            v("2.0.0"),
					PackageJSONUpdates: []domain.UpdateBucket{bucket("2.0.0", target("grandchild", tt.second))},
				}),
				"grandchild": echo,
			}}
			oracle := installed{"parent": "1.0.0", "child1": "1.0.0", "child2": "1.0.0", "grandchild": "1.0.0"}

			res, err := newResolver(t).Resolve(context.Background(), "parent", "2.0.0", oracle, reg)
			require.NoError(t, err)

			assert.Equal(t, map[string]domain.ResolvedPackage{
				"parent":     {Version: v("2.0.0")},
				"child1":     {Version: v("2.0.0")},
				"child2":     {Version: v("2.0.0")},
				"grandchild": {Version: v("4.0.0")},
			}, res.PackageJSON)
		})
	}
}

func TestResolve_SkipsBucketsAtOrBelowInstalled(t *testing.T) {
	reg := &registry{packages: map[string]func(domain.Version) *domain.PackageMetadata{
		"parent": fixed(domain.PackageMetadata{
			Version: v("2.0.0"),
			PackageJSONUpdates: []domain.UpdateBucket{
				bucket("1.0.0", target("not-owed", "2.0.0")),
				bucket("2.0.0", target("child", "2.0.0")),
				bucket("3.0.0", target("not-yet", "3.0.0")),
			},
		}),
		"child":    echo,
		"not-owed": echo,
		"not-yet":  echo,
	}}

	res, err := newResolver(t).Resolve(context.Background(), "parent", "2.0.0", installed{"parent": "1.0.0"}, reg)
	require.NoError(t, err)

	assert.Equal(t, map[string]domain.ResolvedPackage{
		"parent": {Version: v("2.0.0")},
		"child":  {Version: v("2.0.0")},
	}, res.PackageJSON)
}

func TestResolve_UninstalledPackageIsNotExpanded(t *testing.T) {
	reg := &registry{packages: map[string]func(domain.Version) *domain.PackageMetadata{
		"parent": fixed(domain.PackageMetadata{
			Version:            v("2.0.0"),
			PackageJSONUpdates: []domain.UpdateBucket{bucket("2.0.0", target("child", "2.0.0"))},
			Schematics:         []domain.MigrationEntry{{ID: "m", Version: v("2.0.0"), Factory: "f"}},
		}),
		"child": echo,
	}}

	res, err := newResolver(t).Resolve(context.Background(), "parent", "2.0.0", installed{}, reg)
	require.NoError(t, err)

	assert.Equal(t, map[string]domain.ResolvedPackage{
		"parent": {Version: v("2.0.0")},
	}, res.PackageJSON)
	assert.Empty(t, res.Migrations)
}

func TestResolve_ConditionalTargets(t *testing.T) {
	reg := &registry{packages: map[string]func(domain.Version) *domain.PackageMetadata{
		"parent": fixed(domain.PackageMetadata{
			Version: v("2.0.0"),
			PackageJSONUpdates: []domain.UpdateBucket{
				bucket("2.0.0",
					domain.UpdateTarget{Name: "child1", Version: v("2.0.0"), IfPackageInstalled: "other"},
					domain.UpdateTarget{Name: "child2", Version: v("2.0.0"), IfPackageInstalled: "not-installed"},
				),
			},
		}),
		"child1": echo,
		"child2": echo,
	}}
	oracle := installed{"parent": "1.0.0", "other": "1.0.0"}

	res, err := newResolver(t).Resolve(context.Background(), "parent", "2.0.0", oracle, reg)
	require.NoError(t, err)

	assert.Equal(t, map[string]domain.ResolvedPackage{
		"parent": {Version: v("2.0.0")},
		"child1": {Version: v("2.0.0")},
	}, res.PackageJSON)
	assert.NotContains(t, reg.fetched(), "child2@2.0.0")
}

func TestResolve_NotFoundIsNoOp(t *testing.T) {
	reg := &registry{packages: map[string]func(domain.Version) *domain.PackageMetadata{
		"parent": fixed(domain.PackageMetadata{
			Version:            v("2.0.0"),
			PackageJSONUpdates: []domain.UpdateBucket{bucket("2.0.0", target("missing", "2.0.0"))},
		}),
	}}

	res, err := newResolver(t).Resolve(context.Background(), "parent", "2.0.0", installed{"parent": "1.0.0"}, reg)
	require.NoError(t, err)

	assert.Equal(t, map[string]domain.ResolvedPackage{
		"parent": {Version: v("2.0.0")},
	}, res.PackageJSON)
	assert.Contains(t, reg.fetched(), "missing@2.0.0")
}

func TestResolve_FetchErrorAborts(t *testing.T) {
	errBoom := errors.New("registry unreachable")
	reg := &registry{
		packages: map[string]func(domain.Version) *domain.PackageMetadata{
			"parent": fixed(domain.PackageMetadata{
				Version:            v("2.0.0"),
				PackageJSONUpdates: []domain.UpdateBucket{bucket("2.0.0", target("child", "2.0.0"))},
			}),
		},
		errs: map[string]error{"child": errBoom},
	}

	res, err := newResolver(t).Resolve(context.Background(), "parent", "2.0.0", installed{"parent": "1.0.0"}, reg)
	require.ErrorIs(t, err, errBoom)
	assert.Nil(t, res)
}

func TestResolve_CancelledContext(t *testing.T) {
	reg := &registry{packages: map[string]func(domain.Version) *domain.PackageMetadata{
		"parent": echo,
	}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newResolver(t).Resolve(ctx, "parent", "2.0.0", installed{}, reg)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, reg.fetched())
}

func TestResolve_LowerAnswerThanRequestedTerminates(t *testing.T) {
	reg := &registry{packages: map[string]func(domain.Version) *domain.PackageMetadata{
		"a": fixed(domain.PackageMetadata{
			Version:            v("2.0.0"),
			PackageJSONUpdates: []domain.UpdateBucket{bucket("2.0.0", target("b", "3.0.0"))},
		}),
		"b": fixed(domain.PackageMetadata{
			Version:            v("2.0.0"),
			PackageJSONUpdates: []domain.UpdateBucket{bucket("2.0.0", target("a", "3.0.0"))},
		}),
	}}
	oracle := installed{"a": "1.0.0", "b": "1.0.0"}

	res, err := newResolver(t).Resolve(context.Background(), "a", "2.0.0", oracle, reg)
	require.NoError(t, err)

	assert.Equal(t, map[string]domain.ResolvedPackage{
		"a": {Version: v("2.0.0")},
		"b": {Version: v("2.0.0")},
	}, res.PackageJSON)
	assert.Equal(t, []string{"a@2.0.0", "b@3.0.0", "a@3.0.0"}, reg.fetched())
}

func TestResolve_Migrations(t *testing.T) {
	reg := &registry{packages: map[string]func(domain.Version) *domain.PackageMetadata{
		"parent": fixed(domain.PackageMetadata{
			Version: v("2.0.0"),
			PackageJSONUpdates: []domain.UpdateBucket{
				bucket("2.0.0", target("child", "2.0.0"), target("newChild", "3.0.0")),
			},
			Schematics: []domain.MigrationEntry{
				{ID: "version2", Version: v("2.0.0"), Factory: "parent-factory"},
			},
		}),
		"child": fixed(domain.PackageMetadata{
			Version: v("2.0.0"),
			Schematics: []domain.MigrationEntry{
				{ID: "version2", Version: v("2.0.0"), Factory: "child-factory"},
			},
		}),
		"newChild": fixed(domain.PackageMetadata{
			Version: v("3.0.0"),
			Schematics: []domain.MigrationEntry{
				{ID: "version2", Version: v("2.0.0"), Factory: "new-child-factory"},
			},
		}),
	}}
	oracle := installed{"parent": "1.0.0", "child": "1.0.0"}

	res, err := newResolver(t).Resolve(context.Background(), "parent", "2.0.0", oracle, reg)
	require.NoError(t, err)

	assert.Equal(t, []domain.MigrationRecord{
		{Package: "parent", Version: v("2.0.0"), Name: "version2", Factory: "parent-factory"},
		{Package: "child", Version: v("2.0.0"), Name: "version2", Factory: "child-factory"},
	}, res.Migrations)
	assert.Equal(t, map[string]domain.ResolvedPackage{
		"parent":   {Version: v("2.0.0")},
		"child":    {Version: v("2.0.0")},
		"newChild": {Version: v("3.0.0")},
	}, res.PackageJSON)
}

func TestResolve_MigrationsAreGatedAndDeduplicated(t *testing.T) {
	reg := &registry{packages: map[string]func(domain.Version) *domain.PackageMetadata{
		"parent": func(version domain.Version) *domain.PackageMetadata {
			return &domain.PackageMetadata{
				Version: version,
				PackageJSONUpdates: []domain.UpdateBucket{
					bucket("1.5.0", target("child", "2.0.0")),
				},
				Schematics: []domain.MigrationEntry{
					{ID: "already-applied", Version: v("1.0.0"), Factory: "a"},
					{ID: "update-1.5", Version: v("1.5.0"), Factory: "b"},
					{ID: "update-2", Version: v("2.0.0"), Factory: "c"},
					{ID: "update-3", Version: v("3.0.0"), Factory: "d"},
				},
			}
		},
		"child": fixed(domain.PackageMetadata{
			Version: v("2.0.0"),
			PackageJSONUpdates: []domain.UpdateBucket{
				bucket("2.0.0", target("parent", "3.0.0")),
			},
		}),
	}}
	oracle := installed{"parent": "1.0.0", "child": "1.0.0"}

	res, err := newResolver(t).Resolve(context.Background(), "parent", "2.0.0", oracle, reg)
	require.NoError(t, err)

	assert.Equal(t, v("3.0.0"), res.PackageJSON["parent"].Version)
	assert.Equal(t, []domain.MigrationRecord{
		{Package: "parent", Version: v("1.5.0"), Name: "update-1.5", Factory: "b"},
		{Package: "parent", Version: v("2.0.0"), Name: "update-2", Factory: "c"},
		{Package: "parent", Version: v("3.0.0"), Name: "update-3", Factory: "d"},
	}, res.Migrations)
}

func TestResolve_PackageGroups(t *testing.T) {
	reg := &registry{packages: map[string]func(domain.Version) *domain.PackageMetadata{}}
	oracle := installed{}
	for _, name := range append([]string{domain.DefaultPackageGroup}, domain.DefaultPackageGroups()[domain.DefaultPackageGroup]...) {
		reg.packages[name] = fixed(domain.PackageMetadata{Version: v("2.0.0")})
		oracle[name] = "1.0.0"
	}
	provider := resolver.WithPackageGroups(reg, domain.DefaultPackageGroups())

	res, err := newResolver(t).Resolve(context.Background(), domain.DefaultPackageGroup, "2.0.0", oracle, provider)
	require.NoError(t, err)

	require.Len(t, res.PackageJSON, len(reg.packages))
	for name, pkg := range res.PackageJSON {
		assert.Equal(t, domain.ResolvedPackage{Version: v("2.0.0")}, pkg, name)
	}
}

func TestResolve_PackageGroupsSkipMissingCompanions(t *testing.T) {
	reg := &registry{packages: map[string]func(domain.Version) *domain.PackageMetadata{
		"@acme/core":  fixed(domain.PackageMetadata{Version: v("2.0.0")}),
		"@acme/react": echo,
		"@acme/vue":   echo,
	}}
	groups := domain.PackageGroups{"@acme/core": {"@acme/react", "@acme/vue"}}
	oracle := installed{"@acme/core": "1.0.0", "@acme/react": "1.0.0"}

	res, err := newResolver(t).Resolve(
		context.Background(), "@acme/core", "2.0.0", oracle, resolver.WithPackageGroups(reg, groups),
	)
	require.NoError(t, err)

	assert.Equal(t, map[string]domain.ResolvedPackage{
		"@acme/core":  {Version: v("2.0.0")},
		"@acme/react": {Version: v("2.0.0")},
	}, res.PackageJSON)
	assert.Equal(t, []string{"@acme/core@2.0.0", "@acme/react@2.0.0"}, reg.fetched())
}

func TestResolve_Overrides(t *testing.T) {
	reg := &registry{packages: map[string]func(domain.Version) *domain.PackageMetadata{
		"parent": fixed(domain.PackageMetadata{
			Version: v("2.0.0"),
			PackageJSONUpdates: []domain.UpdateBucket{
				bucket("2.0.0", target("child", "2.0.0")),
			},
		}),
		"child": echo,
	}}

	oracle := resolver.WithInstalledOverrides(installed{}, map[string]string{"parent": "1.0.0"})
	provider := resolver.WithTargetOverrides(reg, map[string]string{"child": "2.5.1"})

	res, err := newResolver(t).Resolve(context.Background(), "parent", "2.0.0", oracle, provider)
	require.NoError(t, err)

	assert.Equal(t, map[string]domain.ResolvedPackage{
		"parent": {Version: v("2.0.0")},
		"child":  {Version: v("2.5.1")},
	}, res.PackageJSON)
}

func TestResolve_ConcurrentPrefetchMatchesSequential(t *testing.T) {
	build := func() *registry {
		return &registry{packages: map[string]func(domain.Version) *domain.PackageMetadata{
			"parent": fixed(domain.PackageMetadata{
				Version: v("2.0.0"),
				PackageJSONUpdates: []domain.UpdateBucket{
					bucket("2.0.0",
						target("child1", "2.0.0"),
						target("child2", "2.0.0"),
						target("child3", "2.0.0"),
						target("child4", "2.0.0"),
					),
				},
				Schematics: []domain.MigrationEntry{{ID: "p", Version: v("2.0.0"), Factory: "p"}},
			}),
			"child1": fixed(domain.PackageMetadata{
				Version:            v("2.0.0"),
				PackageJSONUpdates: []domain.UpdateBucket{bucket("2.0.0", target("shared", "3.0.0"))},
				Schematics:         []domain.MigrationEntry{{ID: "c1", Version: v("2.0.0"), Factory: "c1"}},
			}),
			"child2": fixed(domain.PackageMetadata{
				Version:            v("2.0.0"),
				PackageJSONUpdates: []domain.UpdateBucket{bucket("2.0.0", target("shared", "4.0.0"))},
				Schematics:         []domain.MigrationEntry{{ID: "c2", Version: v("2.0.0"), Factory: "c2"}},
			}),
			"child3": echo,
			"child4": echo,
			"shared": func(version domain.Version) *domain.PackageMetadata {
				return &domain.PackageMetadata{
					Version:    version,
					Schematics: []domain.MigrationEntry{{ID: "s", Version: v("3.0.0"), Factory: "s"}},
				}
			},
		}}
	}
	oracle := installed{"parent": "1.0.0", "child1": "1.0.0", "child2": "1.0.0", "shared": "1.0.0"}

	sequentialReg := build()
	sequential, err := newResolver(t).Resolve(context.Background(), "parent", "2.0.0", oracle, sequentialReg)
	require.NoError(t, err)

	concurrentReg := build()
	concurrent, err := newResolver(t).WithConcurrency(4).Resolve(context.Background(), "parent", "2.0.0", oracle, concurrentReg)
	require.NoError(t, err)

	assert.Equal(t, sequential, concurrent)
	assert.Equal(t, v("4.0.0"), concurrent.PackageJSON["shared"].Version)
	assert.ElementsMatch(t, sequentialReg.fetched(), concurrentReg.fetched())
}

func TestResolve_ConcurrentPrefetchError(t *testing.T) {
	errBoom := errors.New("registry unreachable")
	reg := &registry{
		packages: map[string]func(domain.Version) *domain.PackageMetadata{
			"parent": fixed(domain.PackageMetadata{
				Version: v("2.0.0"),
				PackageJSONUpdates: []domain.UpdateBucket{
					bucket("2.0.0", target("child1", "2.0.0"), target("child2", "2.0.0")),
				},
			}),
			"child1": echo,
		},
		errs: map[string]error{"child2": errBoom},
	}

	_, err := newResolver(t).WithConcurrency(4).Resolve(
		context.Background(), "parent", "2.0.0", installed{"parent": "1.0.0"}, reg,
	)
	require.ErrorIs(t, err, errBoom)
	assert.ElementsMatch(t, []string{"parent@2.0.0", "child1@2.0.0", "child2@2.0.0"}, reg.fetched())
}

func TestResolve_RecordsFetchesInTelemetry(t *testing.T) {
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info("fetching parent@2.0.0")
	log.EXPECT().Info("fetching child@2.0.0")

	parentVertex := mocks.NewMockVertex(ctrl)
	parentVertex.EXPECT().Complete(nil)
	childVertex := mocks.NewMockVertex(ctrl)
	childVertex.EXPECT().Cached()
	childVertex.EXPECT().Complete(nil)

	tel := mocks.NewMockTelemetry(ctrl)
	tel.EXPECT().Record(gomock.Any(), "fetch parent@2.0.0").DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, parentVertex
		},
	)
	tel.EXPECT().Record(gomock.Any(), "fetch child@2.0.0").DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, childVertex
		},
	)

	cache := mocks.NewMockMetadataCache(ctrl)
	cache.EXPECT().Get("parent", v("2.0.0")).Return(nil, nil)
	cache.EXPECT().Put("parent", v("2.0.0"), gomock.Any()).Return(nil)
	cache.EXPECT().Get("child", v("2.0.0")).Return(&domain.PackageMetadata{Version: v("2.0.0")}, nil)

	reg := &registry{packages: map[string]func(domain.Version) *domain.PackageMetadata{
		"parent": fixed(domain.PackageMetadata{
			Version:            v("2.0.0"),
			PackageJSONUpdates: []domain.UpdateBucket{bucket("2.0.0", target("child", "2.0.0"))},
		}),
	}}

	res, err := resolver.NewResolver(tel, log).Resolve(
		context.Background(), "parent", "2.0.0", installed{"parent": "1.0.0"}, resolver.WithCache(reg, cache, log),
	)
	require.NoError(t, err)

	assert.Equal(t, v("2.0.0"), res.PackageJSON["child"].Version)
	assert.Equal(t, []string{"parent@2.0.0"}, reg.fetched())
}

func TestResolve_RootFetchErrorIsReturnedUnchanged(t *testing.T) {
	errFetch := errors.New("cannot fetch")
	reg := &registry{errs: map[string]error{"mypackage": errFetch}}

	_, err := newResolver(t).Resolve(context.Background(), "mypackage", "myversion", installed{"mypackage": "1.0"}, reg)
	require.Error(t, err)
	assert.Equal(t, "cannot fetch", err.Error())
	assert.Equal(t, []string{"mypackage@0.0.0"}, reg.fetched())
}

func TestResolve_OnlyInstalledCompanionsAreFetched(t *testing.T) {
	reg := &registry{
		packages: map[string]func(domain.Version) *domain.PackageMetadata{},
		errs:     map[string]error{"@nrwl/nest": errors.New("boom")},
	}
	oracle := installed{}
	for _, name := range append([]string{domain.DefaultPackageGroup}, domain.DefaultPackageGroups()[domain.DefaultPackageGroup]...) {
		reg.packages[name] = fixed(domain.PackageMetadata{
			Version:            v("2.0.0"),
			PackageJSONUpdates: []domain.UpdateBucket{bucket("2.0.0")},
		})
		if name != "@nrwl/nest" {
			oracle[name] = "1.0.0"
		}
	}
	provider := resolver.WithPackageGroups(reg, domain.DefaultPackageGroups())

	res, err := newResolver(t).WithConcurrency(4).
		Resolve(context.Background(), domain.DefaultPackageGroup, "2.0.0", oracle, provider)
	require.NoError(t, err)

	assert.NotContains(t, res.PackageJSON, "@nrwl/nest")
	assert.NotContains(t, reg.fetched(), "@nrwl/nest@2.0.0")
}
