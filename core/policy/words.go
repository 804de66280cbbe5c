// ABOUTME: Default category denylist shipped with the deployment
// ABOUTME: The registry file may override or extend this list

package policy

// DefaultDenylist holds the category terms excluded by default. Matching
// is substring containment, so "伦理" also catches "伦理片".
var DefaultDenylist = []string{
	"伦理",
	"倫理",
	"里番",
	"門事件",
	"门事件",
	"萝莉",
	"蘿莉",
	"制服诱惑",
	"国产传媒",
	"國產傳媒",
	"福利",
	"写真",
	"寫真",
	"情色",
	"男同",
	"女同",
	"三级",
	"三級",
	"美女主播",
	"街拍",
	"赤足",
}
