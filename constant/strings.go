package constant

// Request context keys
const (
	RequestIDKey = "request_id"
)

// HTTP header names
const (
	HeaderRequestID   = "X-Request-ID"
	HeaderContentType = "Content-Type"
)

// Function/Context names
const (
	// Domain context names
	CtxComposer        = "composer"
	CtxComposePlain    = "ComposePlain"
	CtxComposeWithLogo = "ComposeWithLogo"
	CtxVerify          = "Verify"
	CtxGeneration      = "generation"
	CtxGenerate        = "Generate"
	CtxGetGeneration   = "GetGeneration"
	CtxListGenerations = "ListGenerations"

	// Infrastructure context names
	CtxDB       = "db"
	CtxStore    = "Store"
	CtxFindByID = "FindByID"
	CtxList     = "List"
	CtxClose    = "Close"
	CtxAPI      = "api"

	// General context names
	CtxRouter         = "Router"
	CtxMain           = "Main"
	CtxCreateQRCode   = "CreateQRCode"
	CtxGetQRCode      = "GetQRCode"
	CtxGetQRCodeImage = "GetQRCodeImage"
	CtxListQRCodes    = "ListQRCodes"
)

// Data field keys
const (
	// Composer data fields
	DataText        = "text"
	DataOutputPath  = "output_path"
	DataWrittenPath = "written_path"
	DataLogoPath    = "logo_path"
	DataCaption     = "caption"
	DataSize        = "size"
	DataScale       = "scale"
	DataLogoWidth   = "logo_width"
	DataLogoHeight  = "logo_height"
	DataDecoded     = "decoded"
	DataVerified    = "verified"

	// Service data fields
	DataService = "service"
	DataID      = "id"
	DataLogo    = "logo"
	DataLimit   = "limit"
	DataCount   = "count"

	// Database data fields
	DataPath    = "path"
	DataElapsed = "elapsed"
	DataRows    = "rows"
	DataSQL     = "sql"
	DataData    = "data"

	// API data fields
	DataMethod      = "method"
	DataStatus      = "status"
	DataLatency     = "latency"
	DataBytes       = "bytes"
	DataRemoteAddr  = "remote_addr"
	DataUserAgent   = "user_agent"
	DataPort        = "port"
	DataDBPath      = "db_path"
	DataEnvironment = "environment"
)

// Error message constants
const (
	ErrInvalidOutputPath    = "Provide a file name with a '.png' ending"
	ErrEmptyText            = "Text to encode cannot be empty"
	ErrLogoLoad             = "logo could not be loaded"
	ErrEncoding             = "text could not be encoded"
	ErrDecodingInconclusive = "decoding was inconclusive"
	ErrCodeNotFound         = "no QR code found in image"
	ErrEmptyGenerationID    = "Generation id cannot be empty"
	ErrGenerationNotFound   = "generation not found"
)

// Error codes
const (
	ErrCodeAPIDecodeRequest  = "API001"
	ErrCodeAPIServiceError   = "API002"
	ErrCodeAPIReadImage      = "API003"
	ErrCodeAppDBInit         = "APP001"
	ErrCodeAppServerStart    = "APP002"
	ErrCodeAppServerShutdown = "APP003"
)

// Error types
const (
	ErrTypeDomain = "domain"
	ErrTypeAPI    = "api"
	ErrTypeApp    = "application"
)

// API routes
const (
	RouteQRCodes     = "/api/qrcodes"
	RouteQRCode      = "/api/qrcodes/{id}"
	RouteQRCodeImage = "/api/qrcodes/{id}/image"
	RouteHealthcheck = "/health"
)

// Log keys
const (
	LogTimeKey         = "time"
	LogLevelKey        = "level"
	LogNameKey         = "logger"
	LogCallerKey       = "caller"
	LogMessageKey      = "msg"
	LogStacktraceKey   = "stacktrace"
	LogRequestIDKey    = "request_id"
	LogFunctionKey     = "function"
	LogErrorCodeKey    = "error_code"
	LogErrorTypeKey    = "error_type"
	LogErrorMessageKey = "error_message"
	LogEncodingJSON    = "json"
	LogEncodingConsole = "console"
	LogOutputStdout    = "stdout"
	LogOutputStderr    = "stderr"
)

// Message constants for application
const (
	MsgApplicationStarting   = "Application starting"
	MsgFailedToInitDB        = "Failed to initialize database"
	MsgServerStarting        = "Server starting"
	MsgServerFailedToStart   = "Server failed to start"
	MsgServerShuttingDown    = "Server shutting down"
	MsgServerShutdownError   = "Error during server shutdown"
	MsgServerStopped         = "Server stopped"
	MsgRequestReceived       = "Request received"
	MsgRequestCompleted      = "Request completed"
	MsgHandlingCreateRequest = "Handling create QR code request"
	MsgSettingUpRoutes       = "Setting up API routes"
	MsgHealthcheckRequest    = "Handling healthcheck request"
	MsgHealthy               = "Healthy"
	MsgQRCodeGenerated       = "Your QR-code was successfully generated"
	MsgQRCodeBroken          = "Sorry, your logo broke the QR-code. Try a smaller logo"
)

// Cache namespace
const (
	GenerationNamespace = "GEN"
)

// File naming
const (
	PNGExtension = ".png"
	BrokenSuffix = "-broken"
)
