// Package contextbuild selects, prioritizes, and assembles repository content
// into a character-bounded context for model consumption.
//
// Files are classified into priority tiers: project overview docs first, then
// dependency manifests, build configuration, entry-point sources, remaining
// sources, and supplementary docs last. Lower tier numbers survive budget
// truncation preferentially.
package contextbuild

// Classification tables are process-wide immutable lookup sets. All matching
// is performed on lower-cased path segments.

// skipDirectories lists directory names whose contents never reach the context:
// build outputs, dependency caches, version-control internals, virtual
// environments, and IDE metadata.
var skipDirectories = map[string]struct{}{
	"node_modules":  {},
	"vendor":        {},
	"dist":          {},
	"build":         {},
	".git":          {},
	"__pycache__":   {},
	".next":         {},
	".nuxt":         {},
	".output":       {},
	".cache":        {},
	".tox":          {},
	".nox":          {},
	".mypy_cache":   {},
	".ruff_cache":   {},
	".pytest_cache": {},
	".eggs":         {},
	"eggs":          {},
	".venv":         {},
	"venv":          {},
	"env":           {},
	".env":          {},
	"site-packages": {},
	"coverage":      {},
	"htmlcov":       {},
	".terraform":    {},
	".gradle":       {},
	".idea":         {},
	".vscode":       {},
	"target":        {},
	"out":           {},
	"bin":           {},
	"obj":           {},
}

// skipExtensions lists binary, media, archive, and compiled formats.
var skipExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".ico": {}, ".svg": {},
	".bmp": {}, ".webp": {}, ".tiff": {},
	".woff": {}, ".woff2": {}, ".ttf": {}, ".otf": {}, ".eot": {},
	".pyc": {}, ".pyo": {}, ".pyd": {}, ".so": {}, ".dll": {}, ".exe": {},
	".o": {}, ".a": {}, ".lib": {},
	".class": {}, ".jar": {}, ".war": {}, ".ear": {},
	".zip": {}, ".tar": {}, ".gz": {}, ".bz2": {}, ".xz": {}, ".rar": {}, ".7z": {},
	".mp3": {}, ".mp4": {}, ".avi": {}, ".mov": {}, ".wav": {}, ".flac": {},
	".pdf": {}, ".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {}, ".ppt": {}, ".pptx": {},
	".sqlite": {}, ".sqlite3": {}, ".db": {},
	".map": {}, ".lock": {},
}

// skipExtensionSuffixes covers compound extensions that a single-segment
// extension lookup cannot express.
var skipExtensionSuffixes = []string{
	".min.js",
	".min.css",
}

// skipFilenames lists generated artifacts excluded by exact filename.
var skipFilenames = map[string]struct{}{
	"package-lock.json": {},
	"yarn.lock":         {},
	"pnpm-lock.yaml":    {},
	"pipfile.lock":      {},
	"poetry.lock":       {},
	"cargo.lock":        {},
	"composer.lock":     {},
	"gemfile.lock":      {},
	"go.sum":            {},
	"flake.lock":        {},
	".gitattributes":    {},
	".editorconfig":     {},
	".browserslistrc":   {},
	".ds_store":         {},
	"thumbs.db":         {},
}

// tierOverviewFiles holds project overview documents (tier 1).
var tierOverviewFiles = map[string]struct{}{
	"readme.md":  {},
	"readme.rst": {},
	"readme.txt": {},
	"readme":     {},
}

// tierManifestFiles holds package manifests describing technologies and
// dependencies (tier 2).
var tierManifestFiles = map[string]struct{}{
	"package.json":         {},
	"pyproject.toml":       {},
	"setup.py":             {},
	"setup.cfg":            {},
	"cargo.toml":           {},
	"go.mod":               {},
	"pom.xml":              {},
	"build.gradle":         {},
	"build.gradle.kts":     {},
	"gemfile":              {},
	"composer.json":        {},
	"mix.exs":              {},
	"project.clj":          {},
	"requirements.txt":     {},
	"requirements-dev.txt": {},
	"requirements_dev.txt": {},
	"pipfile":              {},
	"environment.yml":      {},
}

// tierInfrastructureFiles holds build and deployment configuration (tier 3).
var tierInfrastructureFiles = map[string]struct{}{
	"dockerfile":          {},
	"docker-compose.yml":  {},
	"docker-compose.yaml": {},
	".env.example":        {},
	".env.sample":         {},
	"makefile":            {},
	"procfile":            {},
	"tsconfig.json":       {},
	"webpack.config.js":   {},
	"vite.config.ts":      {},
	"vite.config.js":      {},
	"next.config.js":      {},
	"next.config.mjs":     {},
	"rollup.config.js":    {},
	"babel.config.js":     {},
	".babelrc":            {},
	"jest.config.js":      {},
	"jest.config.ts":      {},
	"vitest.config.ts":    {},
	"tox.ini":             {},
	"noxfile.py":          {},
	"justfile":            {},
	"taskfile.yml":        {},
	"vercel.json":         {},
	"netlify.toml":        {},
	"fly.toml":            {},
	"render.yaml":         {},
	"app.yaml":            {},
	"serverless.yml":      {},
	"cdk.json":            {},
	"terraform.tf":        {},
	"ansible.cfg":         {},
}

// tierEntryPointBasenames holds filename stems that indicate a program entry
// point when combined with a source extension (tier 4).
var tierEntryPointBasenames = map[string]struct{}{
	"main":     {},
	"app":      {},
	"index":    {},
	"server":   {},
	"cli":      {},
	"run":      {},
	"manage":   {},
	"__main__": {},
	"wsgi":     {},
	"asgi":     {},
}

// sourceExtensions lists recognized source-code extensions (tiers 4 and 5).
var sourceExtensions = map[string]struct{}{
	".py": {}, ".js": {}, ".ts": {}, ".jsx": {}, ".tsx": {},
	".go": {}, ".rs": {}, ".rb": {}, ".java": {}, ".kt": {},
	".c": {}, ".cpp": {}, ".h": {}, ".hpp": {}, ".cs": {},
	".swift": {}, ".scala": {}, ".clj": {}, ".ex": {}, ".exs": {},
	".php": {}, ".lua": {}, ".r": {}, ".jl": {},
	".sh": {}, ".bash": {}, ".zsh": {}, ".fish": {},
	".sql": {}, ".graphql": {}, ".gql": {},
	".proto": {},
}

// tierSupplementaryFiles holds low-priority supplementary docs (tier 6).
var tierSupplementaryFiles = map[string]struct{}{
	"contributing.md":    {},
	"changelog.md":       {},
	"changes.md":         {},
	"history.md":         {},
	"authors.md":         {},
	"code_of_conduct.md": {},
	"security.md":        {},
	"license":            {},
	"license.md":         {},
	"license.txt":        {},
	"notice":             {},
}
