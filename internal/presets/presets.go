package presets

import (
	"sort"
)

// catalog maps preset names to their package lists. The sets mirror common
// Python project archetypes; "Minimal" intentionally installs nothing.
var catalog = map[string][]string{
	"Data Science": {
		"numpy", "pandas", "matplotlib", "seaborn",
		"scikit-learn", "jupyter", "scipy",
	},
	"Web Development (Flask)": {
		"flask", "flask-sqlalchemy", "flask-wtf",
		"flask-login", "flask-migrate", "requests",
	},
	"Web Development (Django)": {
		"django", "django-rest-framework", "django-cors-headers",
		"psycopg2-binary", "gunicorn",
	},
	"Automation & Scripting": {
		"requests", "beautifulsoup4", "selenium",
		"pandas", "openpyxl",
	},
	"Machine Learning": {
		"torch", "torchvision", "tensorflow",
		"keras", "scikit-learn", "xgboost",
	},
	"API Development": {
		"fastapi", "uvicorn", "pydantic",
		"sqlalchemy", "alembic", "python-jose",
	},
	"Testing": {
		"pytest", "pytest-cov", "pytest-mock",
		"tox", "hypothesis", "factory-boy",
	},
	"DevOps": {
		"docker", "boto3", "paramiko",
		"fabric", "ansible", "jinja2",
	},
	"Minimal": {},
}

// Get returns a copy of the package list for a preset. The second return
// reports whether the preset exists.
func Get(name string) ([]string, bool) {
	packages, ok := catalog[name]
	if !ok {
		return nil, false
	}
	out := make([]string, len(packages))
	copy(out, packages)
	return out, true
}

// Names returns all preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
