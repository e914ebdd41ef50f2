package serverconfig

type Config struct {
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	HTTPServer HTTPServerConfig `yaml:"httpserver" mapstructure:"httpserver"`
	GRPCServer GRPCServerConfig `yaml:"grpcserver" mapstructure:"grpcserver"`
	Storage    StorageConfig    `yaml:"storage" mapstructure:"storage"`
	MongoDB    MongoDBConfig    `yaml:"mongodb" mapstructure:"mongodb"`
	MySQL      MySQLConfig      `yaml:"mysql" mapstructure:"mysql"`
	Planner    PlannerConfig    `yaml:"planner" mapstructure:"planner"`
	JWTSecret  string           `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
	// NeedSecret 为 true 时 websocket 消息走 gzip + AES
	NeedSecret bool `yaml:"need_secret" mapstructure:"need_secret"`
}

type GRPCServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

// 存储驱动
const (
	DriverMemory = "memory"
	DriverMongo  = "mongo"
	DriverMySQL  = "mysql"
)

type StorageConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	FlushEveryS int    `yaml:"flush_every_s" mapstructure:"flush_every_s"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type PlannerConfig struct {
	DefaultGridSize int     `yaml:"default_grid_size" mapstructure:"default_grid_size"`
	DefaultCellSize float64 `yaml:"default_cell_size" mapstructure:"default_cell_size"`
	BuildingsFile   string  `yaml:"buildings_file" mapstructure:"buildings_file"`
	ShareBaseURL    string  `yaml:"share_base_url" mapstructure:"share_base_url"`
	PrefsAppName    string  `yaml:"prefs_app_name" mapstructure:"prefs_app_name"`
	AskTimeoutMs    int     `yaml:"ask_timeout_ms" mapstructure:"ask_timeout_ms"`
	IdleTimeoutS    int     `yaml:"idle_timeout_s" mapstructure:"idle_timeout_s"`

	// NodeID 布局 id 的 snowflake 节点号，多实例时各不相同
	NodeID int64 `yaml:"node_id" mapstructure:"node_id"`
}

func (c *Config) applyDefaults() {
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverMemory
	}
	if c.Storage.FlushEveryS <= 0 {
		c.Storage.FlushEveryS = 3
	}
	if c.Planner.DefaultGridSize <= 0 {
		c.Planner.DefaultGridSize = 50
	}
	if c.Planner.DefaultCellSize <= 0 {
		c.Planner.DefaultCellSize = 24
	}
	if c.Planner.BuildingsFile == "" {
		c.Planner.BuildingsFile = "configs/buildings.yml"
	}
	if c.Planner.PrefsAppName == "" {
		c.Planner.PrefsAppName = "alliance_planner"
	}
	if c.Planner.AskTimeoutMs <= 0 {
		c.Planner.AskTimeoutMs = 2000
	}
	if c.Planner.IdleTimeoutS <= 0 {
		c.Planner.IdleTimeoutS = 600
	}
	if c.MongoDB.Database == "" {
		c.MongoDB.Database = "alliance_planner"
	}
}
