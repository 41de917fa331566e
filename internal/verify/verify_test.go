package verify

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/chunnel/pkg/artifact"
	"github.com/dkoosis/chunnel/pkg/contract"
	"github.com/dkoosis/chunnel/pkg/report"
)

func writeArtifact(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const providerFindAll = `{"interface":"CarService","method":"findAll","params":["string"],"returns":"[]Car",` +
	`"input":[{"kind":"exact","value":"H1"}],` +
	`"outcome":{"kind":"returns","value":[{"name":"X"}],"type":"[]Car"},` +
	`"test":"CarServiceContractTest/h1"}`

const consumerHappy = `{"interface":"CarService","method":"findAll","params":["string"],` +
	`"input":[{"kind":"exact","value":"H1"}],` +
	`"outcome":{"kind":"returns","value":[{"name":"X"}],"type":"[]Car"},` +
	`"test":"CarRepositoryTest/happy"}`

func TestRun_PassingRun(t *testing.T) {
	dir := t.TempDir()
	provider := writeArtifact(t, dir, "contracts.ndjson", providerFindAll)
	consumer := writeArtifact(t, dir, "expectations.ndjson", consumerHappy)

	rep, err := Run(context.Background(), Options{
		ContractPaths:    []string{provider},
		ExpectationPaths: []string{consumer},
	})
	require.NoError(t, err)
	assert.Equal(t, report.VerdictPass, rep.Verdict)
	require.Len(t, rep.Results, 1)
	assert.Equal(t, contract.Corresponds, rep.Results[0].Kind)
	assert.NotEmpty(t, rep.Results[0].ContractVersion)
}

func TestRun_MismatchAndMissing(t *testing.T) {
	dir := t.TempDir()
	provider := writeArtifact(t, dir, "contracts.ndjson", providerFindAll)
	consumer := writeArtifact(t, dir, "expectations.ndjson",
		consumerHappy,
		`{"interface":"CarService","method":"findAll","params":["string"],`+
			`"input":[{"kind":"exact","value":"H2"}],`+
			`"outcome":{"kind":"returns","type":"[]Car"},"test":"CarRepositoryTest/h2"}`,
		`{"interface":"Logger","method":"log",`+
			`"input":[{"kind":"any","type":"string"}],`+
			`"outcome":{"kind":"returns"},"test":"CarRepositoryTest/logs"}`,
	)

	rep, err := Run(context.Background(), Options{
		ContractPaths:    []string{provider},
		ExpectationPaths: []string{consumer},
	})
	require.NoError(t, err)
	assert.Equal(t, report.VerdictFail, rep.Verdict)
	assert.Equal(t, 2, rep.Summary.Mismatches)
	assert.Equal(t, 1, rep.Summary.ByKind[contract.ArgumentMismatch])
	assert.Equal(t, 1, rep.Summary.ByKind[contract.MissingContract])
}

func TestRun_MalformedArtifactAborts(t *testing.T) {
	dir := t.TempDir()
	provider := writeArtifact(t, dir, "contracts.ndjson", providerFindAll, "{broken")
	consumer := writeArtifact(t, dir, "expectations.ndjson", consumerHappy)

	_, err := Run(context.Background(), Options{
		ContractPaths:    []string{provider},
		ExpectationPaths: []string{consumer},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, artifact.ErrMalformed)
}

func TestRun_MissingFileAborts(t *testing.T) {
	_, err := Run(context.Background(), Options{
		ContractPaths: []string{"/nonexistent/contracts.ndjson"},
	})
	require.Error(t, err)
}

func TestRun_FatalInconsistency(t *testing.T) {
	dir := t.TempDir()
	provider := writeArtifact(t, dir, "contracts.ndjson",
		providerFindAll,
		`{"interface":"CarService","method":"findAll","params":["string"],"returns":"[]Car",`+
			`"input":[{"kind":"exact","value":"H1"}],`+
			`"outcome":{"kind":"throws","error":"NotFound"},`+
			`"test":"CarServiceContractTest/h1_conflict"}`,
	)
	consumer := writeArtifact(t, dir, "expectations.ndjson", consumerHappy)

	rep, err := Run(context.Background(), Options{
		ContractPaths:      []string{provider},
		ExpectationPaths:   []string{consumer},
		FatalInconsistency: true,
	})
	require.NoError(t, err)
	assert.Equal(t, report.VerdictFail, rep.Verdict)
	assert.True(t, rep.FatalInconsistency)
	require.Len(t, rep.Diagnostics, 1)

	// The same conflict in advisory mode does not fail the run by itself.
	rep, err = Run(context.Background(), Options{
		ContractPaths:    []string{provider},
		ExpectationPaths: []string{consumer},
	})
	require.NoError(t, err)
	assert.Equal(t, report.VerdictPass, rep.Verdict)
	require.Len(t, rep.Diagnostics, 1)
}

func TestRun_NothingToCheck(t *testing.T) {
	dir := t.TempDir()
	provider := writeArtifact(t, dir, "contracts.ndjson", providerFindAll)

	rep, err := Run(context.Background(), Options{
		ContractPaths: []string{provider},
	})
	require.NoError(t, err)
	assert.Equal(t, report.VerdictEmpty, rep.Verdict)
	assert.Contains(t, rep.Unexercised, "CarService")
}

func TestRun_ManyFilesConcurrently(t *testing.T) {
	dir := t.TempDir()
	var contracts, expectations []string
	for i := 0; i < 6; i++ {
		contracts = append(contracts, writeArtifact(t, dir, filepath.Base(t.Name())+"-c"+string(rune('a'+i))+".ndjson", providerFindAll))
		expectations = append(expectations, writeArtifact(t, dir, filepath.Base(t.Name())+"-e"+string(rune('a'+i))+".ndjson", consumerHappy))
	}

	rep, err := Run(context.Background(), Options{
		ContractPaths:    contracts,
		ExpectationPaths: expectations,
		Workers:          3,
	})
	require.NoError(t, err)
	// Identical contracts overwrite each other; every expectation still
	// corresponds.
	assert.Equal(t, report.VerdictPass, rep.Verdict)
	assert.Equal(t, 6, rep.Summary.ByKind[contract.Corresponds])
}
