package scanner

// Fixed selection rules. They are part of the output contract: changing any
// table changes which files land in the context.

const (
	DefaultMaxChars     = 12000
	DefaultMaxFiles     = 50
	DefaultMaxLines     = 60
	DefaultMaxFileChars = 2000

	maxFileBytes = 1 << 20
	sniffBytes   = 8 << 10
)

var pruneDirs = map[string]bool{
	".git": true, ".hg": true, ".svn": true,
	"node_modules": true, "vendor": true, "__pycache__": true,
	".venv": true, "venv": true, "env": true, ".env": true, ".tox": true,
	".mypy_cache": true, ".pytest_cache": true, ".ruff_cache": true,
	"dist": true, "build": true, "out": true, "target": true, "bin": true, "obj": true,
	".next": true, ".nuxt": true, ".svelte-kit": true,
	".idea": true, ".vscode": true, ".gradle": true, ".cache": true,
	"coverage": true, ".terraform": true, ".direnv": true,
}

var excludeNames = map[string]bool{
	"package-lock.json": true,
	"pnpm-lock.yaml":    true,
	"yarn.lock":         true,
	"go.sum":            true,
	"cargo.lock":        true,
	"poetry.lock":       true,
	"composer.lock":     true,
	"gemfile.lock":      true,
	".ds_store":         true,
}

var excludeExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true, ".svg": true, ".ico": true, ".bmp": true,
	".pdf": true, ".zip": true, ".tar": true, ".gz": true, ".tgz": true, ".xz": true, ".7z": true, ".rar": true,
	".so": true, ".dylib": true, ".dll": true, ".exe": true, ".o": true, ".a": true, ".class": true, ".jar": true,
	".war": true, ".wasm": true, ".pyc": true,
	".pem": true, ".crt": true, ".key": true,
	".woff": true, ".woff2": true, ".ttf": true, ".otf": true, ".eot": true,
	".mp3": true, ".mp4": true, ".mov": true, ".wav": true,
	".map": true,
}

var allowedExts = map[string]bool{
	// source
	".go": true, ".py": true, ".rs": true, ".js": true, ".jsx": true, ".mjs": true, ".cjs": true,
	".ts": true, ".tsx": true, ".java": true, ".kt": true, ".kts": true, ".scala": true,
	".c": true, ".cc": true, ".cpp": true, ".cxx": true, ".h": true, ".hpp": true, ".cs": true,
	".php": true, ".rb": true, ".swift": true, ".ex": true, ".exs": true, ".lua": true, ".zig": true,
	".sh": true, ".bash": true, ".zsh": true,

	// config / docs
	".yml": true, ".yaml": true, ".json": true, ".toml": true, ".ini": true, ".cfg": true, ".conf": true,
	".md": true, ".rst": true, ".txt": true, ".xml": true, ".sql": true, ".graphql": true, ".proto": true,
	".html": true, ".css": true, ".scss": true,
}

// manifests are included whatever their extension.
var manifests = map[string]bool{
	"go.mod":             true,
	"package.json":       true,
	"tsconfig.json":      true,
	"pyproject.toml":     true,
	"requirements.txt":   true,
	"setup.py":           true,
	"setup.cfg":          true,
	"pipfile":            true,
	"cargo.toml":         true,
	"pom.xml":            true,
	"build.gradle":       true,
	"build.gradle.kts":   true,
	"gemfile":            true,
	"composer.json":      true,
	"dockerfile":         true,
	"docker-compose.yml": true,
	"makefile":           true,
	"cmakelists.txt":     true,
	"license":            true,
}
