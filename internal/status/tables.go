package status

// Provider ids of the built-in tables.
const (
	ProviderRender        = "render"
	ProviderRenderDotCom  = "renderdotcom"
	ProviderGitHubActions = "github-actions"
)

func builtinTables() map[string]Table {
	render := renderTable()
	return map[string]Table{
		ProviderRender:        render,
		ProviderRenderDotCom:  render,
		ProviderGitHubActions: githubActionsTable(),
	}
}

// renderTable covers Render deploy states. A live deploy implies a finished
// build; failures name their phase in the code itself.
func renderTable() Table {
	return Table{
		Codes: map[string]Pair{
			"created":                {Pending, Pending},
			"build_in_progress":      {Building, Pending},
			"update_in_progress":     {Live, Deploying},
			"pre_deploy_in_progress": {Live, Deploying},
			"live":                   {Live, Live},
			"build_failed":           {Failed, Pending},
			"update_failed":          {Live, Failed},
			"pre_deploy_failed":      {Live, Failed},
			"canceled":               {Cancelled, Cancelled},
			"deactivated":            {Cancelled, Cancelled},
		},
		TieBreaks: map[string]TieBreak{
			// Some API versions report a bare "failed"; the phase decides
			// which half failed.
			"failed": {
				Secondary: map[string]Pair{
					"build":      {Failed, Pending},
					"update":     {Live, Failed},
					"deploy":     {Live, Failed},
					"pre_deploy": {Live, Failed},
				},
				Fallback: Pair{Failed, Pending},
			},
		},
	}
}

// githubActionsTable maps run "status" with "conclusion" as the secondary
// field for completed runs. Runs have no deploy phase, so the deploy half
// mirrors the build half.
func githubActionsTable() Table {
	same := func(s Status) Pair { return Pair{s, s} }
	return Table{
		Codes: map[string]Pair{
			"queued":      same(Pending),
			"waiting":     same(Pending),
			"requested":   same(Pending),
			"pending":     same(Pending),
			"in_progress": same(Building),
		},
		TieBreaks: map[string]TieBreak{
			"completed": {
				Secondary: map[string]Pair{
					"success":         same(Live),
					"neutral":         same(Live),
					"failure":         same(Failed),
					"timed_out":       same(Failed),
					"startup_failure": same(Failed),
					"action_required": same(Pending),
					"cancelled":       same(Cancelled),
					"skipped":         same(Cancelled),
					"stale":           same(Cancelled),
				},
				Fallback: UnknownPair,
			},
		},
	}
}
