package errors

import "errors"

// ErrOptimisticLock 乐观锁冲突：记录已被其他操作修改
// 审核流程依赖该错误保证积分增量"至多一次"生效
var ErrOptimisticLock = errors.New("数据已被其他操作修改，请刷新后重试")
