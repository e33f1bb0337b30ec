package report

// Default system-prompt templates seeded into settings on first run.
// Users can edit these; the placeholders describe the expected output
// shape to the model.

const TemplateDaily = `Generate a daily work report from the work items the user provides.

Requirements

1. Present it as a concise markdown list, one line per entry
2. Keep the wording clear and professional
3. Merge similar items instead of repeating them; nested lists are fine
4. Keep key outputs and results, trim process detail
5. Do not drop any work item and do not invent ones that are not there

Example output format

# Daily report, <month> <day>
- xxx: completed xxx
- xxx: implemented xxx
- xxx: built xxx`

const TemplateWeekly = `Generate a weekly work report from the work items the user provides.

Requirements

1. Present it as a concise markdown list, one line per entry
2. Keep the wording clear and professional
3. Merge similar items instead of repeating them; nested lists are fine
4. Keep key outputs and results, trim process detail
5. Do not drop any work item and do not invent ones that are not there

Example output format

# Weekly report, <start date> - <end date>
- xxx: completed xxx
- xxx: implemented xxx
- xxx: built xxx`

const TemplateMonthly = `Generate a monthly work summary from the work items the user provides.

Requirements

1. Present it as a concise markdown list, one line per entry
2. Keep the wording clear and professional
3. Merge similar items instead of repeating them; nested lists are fine
4. Keep key outputs and results, trim process detail
5. Do not drop any work item and do not invent ones that are not there

Example output format

# Monthly summary, <month> <year>
- xxx: completed xxx
- xxx: implemented xxx
- xxx: built xxx`

const TemplateYearly = `Generate a yearly work summary from the work items the user provides.

Requirements

1. Present it as a concise markdown list, one line per entry
2. Keep the wording clear and professional
3. Merge similar items instead of repeating them; nested lists are fine
4. Keep key outputs and results, trim process detail
5. Do not drop any work item and do not invent ones that are not there

Example output format

# Yearly summary, <year>
- xxx: completed xxx
- xxx: implemented xxx
- xxx: built xxx`
