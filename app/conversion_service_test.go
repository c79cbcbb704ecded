package app

import (
	"bytes"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sheetconv/adapters/output"
	"sheetconv/adapters/render"
	"sheetconv/domain/core"
	"sheetconv/internal"
	"sheetconv/internal/errors"
	"sheetconv/internal/testkit"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSink records writes and fails on demand
type MockSink struct {
	mock.Mock
}

func (m *MockSink) Reset(p []byte) error {
	args := m.Called(string(p))
	return args.Error(0)
}

func (m *MockSink) Append(p []byte) error {
	args := m.Called(string(p))
	return args.Error(0)
}

func quietLogger() *internal.Logger {
	return internal.NewLogger(internal.LogLevelError)
}

func convert(t *testing.T, format string, grid *testkit.Grid) (string, *ConversionResult) {
	t.Helper()
	renderer, err := render.ForFormat(format)
	require.NoError(t, err)

	sink := output.NewMemorySink()
	result, err := NewConversionService(renderer, sink, quietLogger()).Convert(ConversionRequest{Source: grid})
	require.NoError(t, err)
	return sink.String(), result
}

func TestConvert_EndToEnd(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{render.FormatJSON, testkit.PeopleJSON},
		{render.FormatPHP, testkit.PeoplePHP},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, result := convert(t, tt.format, testkit.PeopleGrid())

			assert.Equal(t, tt.want, got)
			assert.Equal(t, 2, result.Records)
			assert.Equal(t, tt.format, result.Format)
			assert.Equal(t, int64(len(tt.want)), result.BytesWritten)
			assert.False(t, result.RunID.String() == "")
		})
	}
}

func TestConvert_NoDataRows(t *testing.T) {
	for _, format := range render.Formats() {
		got, result := convert(t, format, testkit.NewGrid(testkit.Row("id", "name")))
		assert.Equal(t, "[]", got, format)
		assert.Equal(t, 0, result.Records)
	}
}

func TestConvert_EmptySheet(t *testing.T) {
	got, result := convert(t, render.FormatJSON, testkit.NewGrid())
	assert.Equal(t, "[]", got)
	assert.Empty(t, result.Columns)
}

func TestConvert_EmptyHeader(t *testing.T) {
	grid := testkit.NewGrid(
		testkit.Row(),
		testkit.Row(1),
		testkit.Row(2),
	)

	got, _ := convert(t, render.FormatJSON, grid)
	assert.Equal(t, "[{},{}]", got)

	got, _ = convert(t, render.FormatPHP, grid)
	assert.Equal(t, "[[\n    \n],[\n    \n]]", got)
}

func TestConvert_SeparatorCount(t *testing.T) {
	for n := 1; n <= 5; n++ {
		rows := [][]interface{}{testkit.Row("id")}
		for i := 1; i <= n; i++ {
			rows = append(rows, testkit.Row(i))
		}

		got, result := convert(t, render.FormatJSON, testkit.NewGrid(rows...))

		assert.Equal(t, n, result.Records)
		assert.Equal(t, n-1, strings.Count(got, "},{"), "records=%d", n)
		assert.True(t, strings.HasPrefix(got, "[{"))
		assert.True(t, strings.HasSuffix(got, "}]"))
	}
}

func TestConvert_JSONRoundTrip(t *testing.T) {
	grid := testkit.NewGrid(
		testkit.Row("id", "名前", "score", "note"),
		testkit.Row(1, "山田", 91.5, "a <b> & \"c\""),
		testkit.Row(2, "佐藤", 70, nil),
		testkit.Row(3, "鈴木"),
		testkit.Row(nil, "stop"),
	)

	got, _ := convert(t, render.FormatJSON, grid)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))
	require.Len(t, decoded, 3)

	assert.Equal(t, map[string]interface{}{
		"id": float64(1), "名前": "山田", "score": 91.5, "note": "a <b> & \"c\"",
	}, decoded[0])
	assert.Equal(t, map[string]interface{}{
		"id": float64(2), "名前": "佐藤", "score": float64(70), "note": nil,
	}, decoded[1])
	assert.Equal(t, map[string]interface{}{
		"id": float64(3), "名前": "鈴木", "score": nil, "note": nil,
	}, decoded[2])
}

func TestConvert_FieldOrderFollowsHeader(t *testing.T) {
	grid := testkit.NewGrid(
		testkit.Row("zeta", "alpha", "mid"),
		testkit.Row(1, 2, 3),
	)

	got, _ := convert(t, render.FormatJSON, grid)
	assert.Equal(t, "[{\n    \"zeta\": 1,\n    \"alpha\": 2,\n    \"mid\": 3\n}]", got)
}

func TestConvert_UsesGivenRunID(t *testing.T) {
	renderer, _ := render.ForFormat(render.FormatJSON)
	svc := NewConversionService(renderer, output.NewMemorySink(), quietLogger())

	result, err := svc.Convert(ConversionRequest{Source: testkit.PeopleGrid(), RunID: core.RunID("run-7")})
	require.NoError(t, err)
	assert.Equal(t, core.RunID("run-7"), result.RunID)
}

func TestConvert_WriteFailureKeepsPartialOutput(t *testing.T) {
	sink := &MockSink{}
	sink.On("Reset", "[").Return(nil)
	sink.On("Append", "{\n    \"id\": 1,\n    \"name\": \"Alice\"\n}").Return(nil)
	sink.On("Append", ",").Return(fmt.Errorf("disk full"))

	svc := NewConversionService(render.NewJSONRenderer(), sink, quietLogger())
	result, err := svc.Convert(ConversionRequest{Source: testkit.PeopleGrid()})

	require.Error(t, err)
	assert.Equal(t, errors.CodeConversion, errors.GetCode(err))
	assert.Contains(t, err.Error(), "row 3")
	assert.Equal(t, 1, result.Records)
	sink.AssertNotCalled(t, "Append", "]")
	sink.AssertExpectations(t)
}

func TestConvert_ResetFailure(t *testing.T) {
	sink := &MockSink{}
	sink.On("Reset", "[").Return(fmt.Errorf("permission denied"))

	svc := NewConversionService(render.NewPHPRenderer(), sink, quietLogger())
	_, err := svc.Convert(ConversionRequest{Source: testkit.PeopleGrid()})

	require.Error(t, err)
	assert.Equal(t, errors.CodeConversion, errors.GetCode(err))
	sink.AssertNumberOfCalls(t, "Append", 0)
}

func TestConvert_RenderFailure(t *testing.T) {
	grid := testkit.NewGrid(
		testkit.Row("x"),
		testkit.Row(1.0),
		testkit.Row(math.Inf(1)),
	)

	sink := output.NewMemorySink()
	svc := NewConversionService(render.NewJSONRenderer(), sink, quietLogger())
	_, err := svc.Convert(ConversionRequest{Source: grid})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "render row 3")
	assert.Equal(t, "[{\n    \"x\": 1.0\n}", sink.String())
}

func TestConvert_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.php")
	require.NoError(t, os.WriteFile(path, []byte("previous run output that is much longer"), 0644))

	svc := NewConversionService(render.NewPHPRenderer(), output.NewFileSink(path), quietLogger())
	_, err := svc.Convert(ConversionRequest{Source: testkit.PeopleGrid()})
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, testkit.PeoplePHP, string(got))
}

func TestConvert_WarnsOnDuplicateColumns(t *testing.T) {
	var buf bytes.Buffer
	out, flags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	defer func() {
		log.SetOutput(out)
		log.SetFlags(flags)
	}()

	grid := testkit.NewGrid(
		testkit.Row("k", "v", "k"),
		testkit.Row("first", 1, "last"),
		testkit.Row("again", 2, "still"),
	)

	sink := output.NewMemorySink()
	svc := NewConversionService(render.NewJSONRenderer(), sink, internal.NewLogger(internal.LogLevelWarn))
	_, err := svc.Convert(ConversionRequest{Source: grid})
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(buf.String(), "[WARN] [convert]"))
	assert.Contains(t, buf.String(), "duplicate column names")
	assert.Contains(t, sink.String(), "\"k\": \"last\"")
}
