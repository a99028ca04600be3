package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"skillCompare/business/user"
	"skillCompare/domain"

	"github.com/gosimple/slug"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	calls  []string
	closed bool
}

func (f *fakeMigrator) Up() error {
	f.calls = append(f.calls, "up")
	return nil
}

func (f *fakeMigrator) Down() error {
	f.calls = append(f.calls, "down")
	return nil
}

func (f *fakeMigrator) Version() (uint, bool, error) {
	f.calls = append(f.calls, "version")
	return 3, false, nil
}

func (f *fakeMigrator) Close() error {
	f.closed = true
	return nil
}

type fakeSeeder struct{}

func (fakeSeeder) Seed(context.Context) (SeedReport, error) {
	return SeedReport{Platforms: 4, Categories: 4, Courses: 8, Users: 2}, nil
}

type fakeAdmins struct {
	got user.RegisterInput
}

func (f *fakeAdmins) CreateAdmin(_ context.Context, in user.RegisterInput) (domain.User, error) {
	f.got = in
	return domain.User{Email: in.Email, Role: domain.RoleAdmin}, nil
}

func setup() (*commandLine, *bytes.Buffer, *fakeMigrator, *fakeAdmins) {
	out := &bytes.Buffer{}
	m := &fakeMigrator{}
	admins := &fakeAdmins{}
	cli := &commandLine{
		out:         out,
		newMigrator: func() (migrator, error) { return m, nil },
		newSeeder:   func() (seeder, error) { return fakeSeeder{}, nil },
		newAdmins:   func() (adminCreator, error) { return admins, nil },
	}
	return cli, out, m, admins
}

func TestRunUsage(t *testing.T) {
	cli, out, _, _ := setup()

	assert.ErrorIs(t, cli.run([]string{"admin"}), errHelp)
	assert.Contains(t, out.String(), "Usage:")
	assert.ErrorIs(t, cli.run([]string{"admin", "lol"}), errHelp)
	assert.ErrorIs(t, cli.run([]string{"admin", "migrate"}), errHelp)
}

func TestMigrate(t *testing.T) {
	cli, out, m, _ := setup()

	require.NoError(t, cli.run([]string{"admin", "migrate", "up"}))
	require.NoError(t, cli.run([]string{"admin", "migrate", "down"}))
	require.NoError(t, cli.run([]string{"admin", "migrate", "version"}))
	assert.Equal(t, []string{"up", "down", "version"}, m.calls)
	assert.True(t, m.closed)
	assert.Contains(t, out.String(), "version 3 (dirty: false)")

	err := cli.run([]string{"admin", "migrate", "sideways"})
	assert.EqualError(t, err, `"sideways": no such command`)
}

func TestSeed(t *testing.T) {
	cli, out, _, _ := setup()

	require.NoError(t, cli.run([]string{"admin", "seed"}))
	assert.Contains(t, out.String(), "seeded 4 platforms, 4 categories, 8 courses, 2 users")
}

func TestCreateAdmin(t *testing.T) {
	cli, out, _, admins := setup()
	orig := readPasswordFunc
	defer func() { readPasswordFunc = orig }()

	readPasswordFunc = func(int) ([]byte, error) { return []byte("s3cret-pass"), nil }
	require.NoError(t, cli.run([]string{"admin", "createadmin", "-email", "root@example.com", "-name", "Root"}))
	assert.Equal(t, user.RegisterInput{Name: "Root", Email: "root@example.com", Password: "s3cret-pass"}, admins.got)
	assert.Contains(t, out.String(), "admin root@example.com ready")

	assert.ErrorIs(t, cli.run([]string{"admin", "createadmin"}), errHelp)

	readPasswordFunc = func(int) ([]byte, error) { return nil, nil }
	assert.ErrorIs(t, cli.run([]string{"admin", "createadmin", "-email", "root@example.com"}), errHelp)

	readPasswordFunc = func(int) ([]byte, error) { return nil, errors.New("no tty") }
	assert.EqualError(t, cli.run([]string{"admin", "createadmin", "-email", "root@example.com"}), "no tty")
}

func TestSeedDataIsConsistent(t *testing.T) {
	platforms := map[string]bool{}
	for _, p := range seedPlatforms {
		assert.Equal(t, slug.Make(p.Name), p.Slug)
		platforms[p.Slug] = true
	}
	categories := map[string]bool{}
	for _, c := range seedCategories {
		assert.Equal(t, slug.Make(c.Name), c.Slug)
		categories[c.Slug] = true
	}

	slugs := map[string]bool{}
	for _, sc := range seedCourses {
		assert.True(t, platforms[sc.platform], sc.course.Slug)
		assert.True(t, categories[sc.category], sc.course.Slug)
		assert.False(t, slugs[sc.course.Slug], "duplicate slug %s", sc.course.Slug)
		slugs[sc.course.Slug] = true
		assert.GreaterOrEqual(t, len(sc.course.Title), 5)
		assert.GreaterOrEqual(t, len(sc.course.Description), 20)
		assert.True(t, sc.course.Level.Valid())
	}
}
