package repository

// NewTestRepositories sqlite 上的 gorm 实现，供外部测试包驱动 service
var NewTestRepositories = newTestRepos
