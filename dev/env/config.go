package devenv

// KFCLiveConfig enables the kfc tests that hit the real site, it is read
// from dev/.state/kfc_live.json5.
type KFCLiveConfig struct {
	BranchesURL string `json:"branches_url"`
	Insecure    bool   `json:"insecure"`
	// MinBranches is the least number of branches the live site is expected
	// to list.
	MinBranches int `json:"min_branches"`
}
