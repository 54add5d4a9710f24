package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolidaysCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"date":"2026-03-08","holidayName":"Международный женский день"}]`))
	}))
	defer srv.Close()

	t.Setenv("RUS_CALENDAR_BASE", srv.URL)
	chdir(t, t.TempDir())

	run := func(args ...string) string {
		var out bytes.Buffer
		root := newRootCmd()
		root.SetOut(&out)
		root.SetArgs(args)
		require.NoError(t, root.Execute())
		return out.String()
	}

	assert.Equal(t, "Международный женский день\n", run("holidays", "--date", "2026-03-08"))
	assert.Equal(t, "no holidays on 2026-03-09\n", run("holidays", "--date", "2026-03-09"))
}

func TestHolidaysCmd_BadDate(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"holidays", "--date", "08.03.2026"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	assert.Error(t, root.Execute())
}
