// Package paths 集中维护站内页面路径，渲染与缓存失效共用同一套规则
package paths

import "net/url"

// PostShow 帖子详情页路径
func PostShow(topicSlug, postID string) string {
	return "/topics/" + url.PathEscape(topicSlug) + "/posts/" + url.PathEscape(postID)
}

// PageKey 页面缓存键
func PageKey(path string) string {
	return "page:" + path
}

// PageRevisionKey 页面修订号键，每次失效时更新
func PageRevisionKey(path string) string {
	return "page-rev:" + path
}
