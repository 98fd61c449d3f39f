package testutil

// TeamsTableHTML is a registration page with an explicit ID column.
const TeamsTableHTML = `<table>
<tr><th>Event</th><th>ID</th><th>Team Name</th><th>Players</th></tr>
<tr><td>Open Teams</td><td>101</td><td>ROSSI</td><td>Marco ROSSI (10234) captain Luca BIANCHI (10235)</td></tr>
<tr><td>Women Teams</td><td>201</td><td>Les Bleues</td><td>Anne DUPONT (30877) Marie LEFEVRE (30878) npc</td></tr>
</table>`

// PairsTableHTML is a registration page without an ID column.
const PairsTableHTML = `<table>
<tr><td>Event</td><td>Pair Name</td><td>Players</td></tr>
<tr><td>Open Pairs</td><td>ROSSI - BIANCHI</td><td>Marco ROSSI (10234) Luca BIANCHI (10235)</td></tr>
</table>`

// MinimalPDF is a structurally valid one-page PDF.
const MinimalPDF = "%PDF-1.4\n" +
	"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n" +
	"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n" +
	"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>\nendobj\n" +
	"xref\n0 4\n" +
	"0000000000 65535 f \n" +
	"0000000009 00000 n \n" +
	"0000000058 00000 n \n" +
	"0000000115 00000 n \n" +
	"trailer\n<< /Size 4 /Root 1 0 R >>\n" +
	"startxref\n186\n%%EOF\n"
