package ephemeris

// Config настройки эфемеридного движка.
// DataDir - каталог с файлами теории VSOP87 (формат B/D, как в
// github.com/soniakeys/vsop87). Загружается один раз при старте процесса.
type Config struct {
	DataDir string `envconfig:"DATA_DIR"`
}
