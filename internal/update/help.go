package update

const helpMarkdown = `# taskboard

A board of tasks in three columns: **UPCOMING**, **IN_PROGRESS**,
**COMPLETED**. Changes apply to the board immediately and reconcile with the
server in the background; a failed request rolls the board back and shows
the error.

## Keys

| Key | Action |
|-----|--------|
| h/l, arrows | move between columns |
| j/k, arrows | move within a column |
| n | new task |
| e | edit selected task |
| d | delete selected task (asks first) |
| space | cycle status of selected task |
| r | reload from server |
| / | command palette |
| ? | toggle this help |
| q | quit |

## Palette commands

- ` + "`/add <name>`" + ` — create a task
- ` + "`/done <id-prefix>`" + ` — mark a task completed
- ` + "`/delete <id-prefix>`" + ` — delete a task
- ` + "`/filter <status|all>`" + ` — narrow the board to one column
- ` + "`/refresh`" + ` — reload from server

Controls for a task stay disabled while it has a request in flight.
`
