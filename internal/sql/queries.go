package sql

import (
	_ "embed"
)

//go:embed queries/insert_run.sql
var InsertRun string

//go:embed queries/complete_run.sql
var CompleteRun string

//go:embed queries/fail_run.sql
var FailRun string

//go:embed queries/list_runs.sql
var ListRuns string
