package consts

const (
	// ViewCacheKey 评论列表视图缓存，后接失效 scope，如 post:1:comments
	ViewCacheKey = "view:"
	// ViewVersionKey 视图缓存当前版本戳，后接 scope
	ViewVersionKey = "view_ver:"
	// TokenRevokedKey 注销的 token 签名
	TokenRevokedKey = "token:revoked:"
)

const (
	ReportLock = "report:lock:"
	PurgeLock  = "job:purge:lock"
)
