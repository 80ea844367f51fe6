package naming

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanContainersUniqueNames(t *testing.T) {
	items := []Item{
		{Name: "track=fly1", Refs: []string{"video0.mp4"}},
		{Name: "track=fly2", Refs: []string{"video1.mp4"}},
		{Name: "track=fly3", Refs: []string{"video2.mp4"}},
	}

	containers, err := PlanContainers(items, Options{})
	require.NoError(t, err)

	require.Len(t, containers, len(items), "N distinct names yield N containers")
	for i, c := range containers {
		assert.Equal(t, items[i].Name, c.Name)
		assert.Equal(t, items[i].Refs, c.Refs)
	}
}

func TestPlanContainersMergeUnderExternalMode(t *testing.T) {
	items := []Item{
		{Name: "Video Session", Refs: []string{"part0.mp4"}},
		{Name: "Video Session", Refs: []string{"part1.mp4"}},
		{Name: "Video Session", Refs: []string{"part2.mp4"}},
	}

	containers, err := PlanContainers(items, Options{ExternalMode: true})
	require.NoError(t, err)

	require.Len(t, containers, 1, "colliding names merge into one container")
	assert.Equal(t, "Video Session", containers[0].Name)
	assert.Equal(t, []string{"part0.mp4", "part1.mp4", "part2.mp4"}, containers[0].Refs,
		"references concatenate in input order")
}

func TestPlanContainersConflictOutsideExternalMode(t *testing.T) {
	items := []Item{
		{Name: "Video Session", Refs: []string{"part0.mp4"}},
		{Name: "Video Session", Refs: []string{"part1.mp4"}},
	}

	containers, err := PlanContainers(items, Options{})
	assert.Nil(t, containers)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "Video Session", conflict.Name)
}

func TestPlanContainersMixedCollisions(t *testing.T) {
	items := []Item{
		{Name: "a", Refs: []string{"a0"}},
		{Name: "b", Refs: []string{"b0"}},
		{Name: "a", Refs: []string{"a1"}},
	}

	containers, err := PlanContainers(items, Options{ExternalMode: true})
	require.NoError(t, err)

	require.Len(t, containers, 2)
	assert.Equal(t, []string{"a0", "a1"}, containers[0].Refs)
	assert.Equal(t, []string{"b0"}, containers[1].Refs)
}

func TestPlanContainersEmpty(t *testing.T) {
	containers, err := PlanContainers(nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, containers)
}

func tree(subject, session string) map[string]any {
	md := map[string]any{}
	if subject != "" {
		md["Subject"] = map[string]any{"subject_id": subject}
	}
	if session != "" {
		md["NWBFile"] = map[string]any{"session_id": session}
	}
	return md
}

func TestUniqueNamesRenamesAllPlaceholders(t *testing.T) {
	// Three sessions with identical placeholder names but distinct
	// metadata must resolve to three distinct, non-placeholder names.
	entries := []Entry{
		{Path: "/out/temp_nwbfile_name_1.nwb", Metadata: tree("m1", "day1")},
		{Path: "/out/temp_nwbfile_name_2.nwb", Metadata: tree("m1", "day2")},
		{Path: "/out/temp_nwbfile_name_3.nwb", Metadata: tree("m2", "day1")},
	}

	renames, err := UniqueNames(entries)
	require.NoError(t, err)
	require.Len(t, renames, 3)

	seen := map[string]bool{}
	for _, entry := range entries {
		name := renames[entry.Path]
		assert.False(t, seen[name], "names must be globally unique")
		assert.False(t, IsPlaceholder(name))
		seen[name] = true
	}
	assert.Equal(t, "sub-m1_ses-day1.nwb", renames["/out/temp_nwbfile_name_1.nwb"])
}

func TestUniqueNamesInsufficientMetadata(t *testing.T) {
	entries := []Entry{
		{Path: "/out/temp_nwbfile_name_1.nwb", Metadata: map[string]any{}},
	}

	renames, err := UniqueNames(entries)
	assert.Empty(t, renames)

	var unresolved *UnresolvedNameError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "/out/temp_nwbfile_name_1.nwb", unresolved.Path)
}

func TestUniqueNamesDerivedCollision(t *testing.T) {
	entries := []Entry{
		{Path: "/out/temp_nwbfile_name_1.nwb", Metadata: tree("m1", "day1")},
		{Path: "/out/temp_nwbfile_name_2.nwb", Metadata: tree("m1", "day1")},
	}

	renames, err := UniqueNames(entries)
	var unresolved *UnresolvedNameError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "/out/temp_nwbfile_name_2.nwb", unresolved.Path)

	// The first file still resolves; only the colliding one is skipped.
	assert.Equal(t, map[string]string{"/out/temp_nwbfile_name_1.nwb": "sub-m1_ses-day1.nwb"}, renames)
}

func TestUniqueNamesRespectsExplicitNames(t *testing.T) {
	// A derived name colliding with an explicitly named file is rejected;
	// explicit files themselves are never renamed.
	entries := []Entry{
		{Path: "/out/sub-m1_ses-day1.nwb", Metadata: tree("m1", "day1")},
		{Path: "/out/temp_nwbfile_name_1.nwb", Metadata: tree("m1", "day1")},
	}

	_, err := UniqueNames(entries)
	var unresolved *UnresolvedNameError
	require.ErrorAs(t, err, &unresolved)
	assert.Contains(t, unresolved.Reason, "already used")
}

func TestDescriptiveName(t *testing.T) {
	tests := []struct {
		subject string
		session string
		want    string
	}{
		{"mouse 1", "day_2", "sub-mouse-1_ses-day-2.nwb"},
		{"m1", "", "sub-m1.nwb"},
		{"", "day1", "ses-day1.nwb"},
		{"", "", ".nwb"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s-%s", tt.subject, tt.session), func(t *testing.T) {
			assert.Equal(t, tt.want, DescriptiveName(tree(tt.subject, tt.session)))
		})
	}
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "temp_nwbfile_name_7", Placeholder(7))
	assert.True(t, IsPlaceholder("/out/temp_nwbfile_name_7.nwb"))
	assert.False(t, IsPlaceholder("/out/sub-m1.nwb"))
}
