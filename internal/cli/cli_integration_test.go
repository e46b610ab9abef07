package cli

import (
	"bytes"
	"encoding/json"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func TestCLISmoke(t *testing.T) {
	t.Setenv("TRAIL_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()

	mustRun := func(args ...string) map[string]any {
		t.Helper()
		stdout, stderr, err := runCLI(t, args)
		if err != nil {
			t.Fatalf("command failed: trail %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
		}
		var env map[string]any
		if err := json.Unmarshal(stdout, &env); err != nil {
			t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
		}
		if _, ok := env["data"]; !ok {
			t.Fatalf("expected JSON envelope to contain data key; got: %v\nstdout:\n%s", env, string(stdout))
		}
		return env
	}
	data := func(env map[string]any) map[string]any {
		m, _ := env["data"].(map[string]any)
		return m
	}
	taskID := func(env map[string]any) string {
		task, _ := data(env)["task"].(map[string]any)
		id, _ := task["id"].(string)
		return id
	}

	// Init an isolated project (no ~/.trail state is touched under --dir +
	// TRAIL_CONFIG_DIR).
	mustRun("--dir", dir, "init", "--name", "Smoke")

	// Track setup: slug and prefix are derived from the name.
	tr := mustRun("--dir", dir, "tracks", "new", "Effects", "Engine")
	if id, _ := data(tr)["id"].(string); id != "effects-engine" {
		t.Fatalf("expected track id effects-engine; got: %#v", tr["data"])
	}
	if prefix, _ := data(tr)["prefix"].(string); prefix != "ENG" {
		t.Fatalf("expected derived prefix ENG; got: %#v", tr["data"])
	}

	// Tasks: sequential IDs, trailing #words become tags.
	a := mustRun("--dir", dir, "add", "effects-engine", "Design", "the", "relay", "pipeline", "#core")
	if id := taskID(a); id != "ENG-001" {
		t.Fatalf("expected first task ENG-001; got: %#v", a["data"])
	}
	b := mustRun("--dir", dir, "add", "effects-engine", "Wire", "the", "dispatcher")
	if id := taskID(b); id != "ENG-002" {
		t.Fatalf("expected second task ENG-002; got: %#v", b["data"])
	}
	sub := mustRun("--dir", dir, "sub", "ENG-001", "Draft", "the", "schema")
	if id := taskID(sub); id != "ENG-001.1" {
		t.Fatalf("expected subtask ENG-001.1; got: %#v", sub["data"])
	}

	// State and metadata edits.
	mustRun("--dir", dir, "cycle", "ENG-001")
	mustRun("--dir", dir, "done", "ENG-002")
	mustRun("--dir", dir, "tag", "ENG-001", "add", "urgent")
	mustRun("--dir", dir, "dep", "ENG-001", "add", "ENG-002")

	show := mustRun("--dir", dir, "show", "ENG-001")
	task, _ := data(show)["task"].(map[string]any)
	if state, _ := task["state"].(string); state != "active" {
		t.Fatalf("expected ENG-001 active after cycle; got: %#v", show["data"])
	}
	if deps, _ := task["deps"].([]any); len(deps) != 1 || deps[0] != "ENG-002" {
		t.Fatalf("expected ENG-001 to depend on ENG-002; got: %#v", show["data"])
	}

	// Inbox capture and triage.
	mustRun("--dir", dir, "inbox", "add", "Call", "the", "vendor", "--tag", "ops")
	inbox := mustRun("--dir", dir, "inbox")
	if items, _ := data(inbox)["items"].([]any); len(items) != 1 {
		t.Fatalf("expected one inbox item; got: %#v", inbox["data"])
	}
	triaged := mustRun("--dir", dir, "inbox", "triage", "1", "--track", "effects-engine")
	if id := taskID(triaged); id != "ENG-003" {
		t.Fatalf("expected triaged task ENG-003; got: %#v", triaged["data"])
	}
	after := mustRun("--dir", dir, "inbox")
	if items, _ := data(after)["items"].([]any); len(items) != 0 {
		t.Fatalf("expected inbox emptied by triage; got: %#v", after["data"])
	}

	// Prefix rename rewrites every ID and dep reference.
	ren := mustRun("--dir", dir, "tracks", "rename-prefix", "effects-engine", "fx")
	if np, _ := data(ren)["newPrefix"].(string); np != "FX" {
		t.Fatalf("expected new prefix FX; got: %#v", ren["data"])
	}
	show2 := mustRun("--dir", dir, "show", "FX-001")
	task2, _ := data(show2)["task"].(map[string]any)
	if deps, _ := task2["deps"].([]any); len(deps) != 1 || deps[0] != "FX-002" {
		t.Fatalf("expected dep rewritten to FX-002; got: %#v", show2["data"])
	}
	if _, _, err := runCLI(t, []string{"--dir", dir, "show", "ENG-001"}); err == nil {
		t.Fatalf("expected show of a renamed ID to fail")
	}

	// Validator: structural errors stay empty through all of the above.
	chk := mustRun("--dir", dir, "check")
	if errs, _ := data(chk)["errors"].([]any); len(errs) != 0 {
		t.Fatalf("expected no validation errors; got: %#v", chk["data"])
	}

	// Dry-run clean must not change the files.
	mustRun("--dir", dir, "clean", "--dry-run")
	again := mustRun("--dir", dir, "show", "FX-003")
	if id := taskID(again); id != "FX-003" {
		t.Fatalf("expected FX-003 intact after dry-run clean; got: %#v", again["data"])
	}

	mustRun("--dir", dir, "rm", "FX-003")
	if _, _, err := runCLI(t, []string{"--dir", dir, "show", "FX-003"}); err == nil {
		t.Fatalf("expected show of a removed task to fail")
	}
}

func TestCLITextFormat(t *testing.T) {
	t.Setenv("TRAIL_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()

	if _, _, err := runCLI(t, []string{"--dir", dir, "init"}); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, _, err := runCLI(t, []string{"--dir", dir, "tracks", "new", "Effects", "Engine"}); err != nil {
		t.Fatalf("tracks new: %v", err)
	}
	if _, _, err := runCLI(t, []string{"--dir", dir, "add", "effects-engine", "Design", "the", "relay"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	stdout, _, err := runCLI(t, []string{"--dir", dir, "--format", "text", "list"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !bytes.Contains(stdout, []byte("ENG-001")) || !bytes.Contains(stdout, []byte("Design the relay")) {
		t.Fatalf("expected text listing with the task line; got:\n%s", stdout)
	}
	if json.Valid(bytes.TrimSpace(stdout)) {
		t.Fatalf("expected non-JSON text output; got:\n%s", stdout)
	}
}
