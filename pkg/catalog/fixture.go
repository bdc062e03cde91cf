package catalog

var staticProjects = map[string][]Project{
	"msproject": {
		{ID: "1", Name: "Nieuwbouw School Utrecht", Status: "on-track", Progress: 80},
		{ID: "2", Name: "Renovatie Kantoor Rotterdam", Status: "delayed", Progress: 45},
		{ID: "3", Name: "Wooncomplex Amstelveen", Status: "ahead", Progress: 95},
	},
	"autocad": {
		{ID: "101", Name: "AutoCAD Project A", Status: "on-track", Progress: 60},
		{ID: "102", Name: "AutoCAD Project B", Status: "delayed", Progress: 30},
	},
	"revit": {
		{ID: "201", Name: "Revit Project X", Status: "on-track", Progress: 75},
		{ID: "202", Name: "Revit Project Y", Status: "ahead", Progress: 90},
	},
	"asta": {
		{ID: "301", Name: "Wooncomplex Amstelveen", Status: "on-track", Progress: 85},
		{ID: "302", Name: "Sporthal Eindhoven", Status: "on-track", Progress: 23},
	},
	"solibri": {
		{ID: "401", Name: "Kantoorgebouw Rotterdam", Status: "delayed", Progress: 45},
	},
	"excel": {
		{ID: "501", Name: "Renovatie School Utrecht", Status: "ahead", Progress: 92},
	},
	"whatsapp": {
		{ID: "601", Name: "Bouwteam Amstelveen", Status: "on-track", Progress: 70},
	},
	"bluebeam": {
		{ID: "701", Name: "Revisies Kantoor Rotterdam", Status: "on-track", Progress: 55},
	},
}

var staticFiles = map[string][]File{
	"autocad": {
		{ID: "ac-001", Name: "Plattegrond_BG.dwg", Type: "DWG", Size: "2.4 MB", LastModified: "2024-02-14T10:30:00Z", Status: "active", Project: "AutoCAD Project A"},
		{ID: "ac-002", Name: "Sectie_A-A.dwg", Type: "DWG", Size: "1.8 MB", LastModified: "2024-02-13T15:45:00Z", Status: "active", Project: "AutoCAD Project B"},
	},
	"msproject": {
		{ID: "ms-001", Name: "Wooncomplex_Planning.mpp", Type: "MPP", Size: "1.2 MB", LastModified: "2024-02-14T08:15:00Z", Status: "active", Project: "Wooncomplex Amstelveen"},
		{ID: "ms-002", Name: "Resource_Planning.mpp", Type: "MPP", Size: "0.8 MB", LastModified: "2024-02-13T14:30:00Z", Status: "active", Project: "Nieuwbouw School Utrecht"},
	},
	"asta": {
		{ID: "asta-001", Name: "Wooncomplex_Planning.ast", Type: "AST", Size: "3.2 MB", LastModified: "2024-02-14T09:15:00Z", Status: "active", Project: "Wooncomplex Amstelveen"},
		{ID: "asta-002", Name: "Resource_Planning.ast", Type: "AST", Size: "1.8 MB", LastModified: "2024-02-13T16:30:00Z", Status: "active", Project: "Sporthal Eindhoven"},
	},
	"revit": {
		{ID: "rv-001", Name: "BIM_Model.rvt", Type: "RVT", Size: "45.2 MB", LastModified: "2024-02-14T11:20:00Z", Status: "active", Project: "Revit Project X"},
		{ID: "rv-002", Name: "Families_Collectie.rfa", Type: "RFA", Size: "12.8 MB", LastModified: "2024-02-13T16:45:00Z", Status: "active", Project: "Revit Project Y"},
	},
	"excel": {
		{ID: "excel-001", Name: "Project_Planning.xlsx", Type: "XLSX", Size: "1.2 MB", LastModified: "2024-02-15T10:30:00Z", Status: "active", Project: "OneDrive"},
		{ID: "excel-002", Name: "Budget_Overzicht.xlsx", Type: "XLSX", Size: "856 KB", LastModified: "2024-02-14T15:45:00Z", Status: "active", Project: "OneDrive"},
	},
	"solibri": {
		{ID: "sol-001", Name: "Clash_Rapport.smc", Type: "SMC", Size: "6.1 MB", LastModified: "2024-02-12T13:10:00Z", Status: "active", Project: "Kantoorgebouw Rotterdam"},
	},
	"whatsapp": {
		{ID: "wa-001", Name: "Bouwplaats_Foto.jpg", Type: "JPG", Size: "2.1 MB", LastModified: "2024-02-15T07:55:00Z", Status: "active", Project: "Bouwteam Amstelveen"},
	},
	"bluebeam": {
		{ID: "bb-001", Name: "Revisie_Gevel.pdf", Type: "PDF", Size: "4.7 MB", LastModified: "2024-02-14T12:05:00Z", Status: "active", Project: "Revisies Kantoor Rotterdam"},
	},
}
