package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	devenv "branchscan/dev/env"
	"branchscan/internal/archive"
)

func createArchive(ctx context.Context) error {
	path, err := devenv.ResolvePath("<dev_state>/archive.db")
	if err != nil {
		return err
	}

	_, err = os.Stat(path)
	if err == nil {
		fmt.Println("archive already created at", path)
		return nil
	}

	fmt.Println("creating archive at", path)
	store, err := archive.Open(ctx, path)
	if err != nil {
		return err
	}
	return store.Close()
}

const kfcLiveSample = `{
  // remove this file to skip the tests that hit kfc.az
  branches_url: "https://kfc.az/az/branches",
  insecure: false,
  min_branches: 10,
}
`

func writeSample(name, contents string) error {
	path, err := devenv.ResolvePath("<dev_state>/" + name)
	if err != nil {
		return err
	}
	_, err = os.Stat(path)
	if err == nil {
		fmt.Println("config already exists at", path)
		return nil
	}
	fmt.Println("writing sample config to", path)
	return os.WriteFile(path, []byte(contents), 0644)
}

func PrintConfigLocations() {
	slog.Info("live tests read their config from dev/.state, delete a config there to skip its tests. run `branchscan --db dev/.state/archive.db ...` to record runs into the dev archive.")
}
