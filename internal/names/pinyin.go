// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package names

import (
	"strings"
	"unicode"

	"github.com/meshintel/paper-verifier/pkg/types"
)

// pinyinTable is a bounded character-to-romanization lookup covering
// common Chinese surnames plus given-name characters seen in practice.
// It is a best-effort table, not a full transliteration system:
// characters outside it pass through unchanged.
var pinyinTable = map[rune]string{
	'邓': "Deng", '广': "Guang", '川': "Chuan", '何': "He", '李': "Li", '王': "Wang",
	'张': "Zhang", '刘': "Liu", '陈': "Chen", '杨': "Yang", '赵': "Zhao", '黄': "Huang",
	'周': "Zhou", '吴': "Wu", '徐': "Xu", '孙': "Sun", '胡': "Hu", '朱': "Zhu",
	'高': "Gao", '林': "Lin", '郭': "Guo", '马': "Ma", '罗': "Luo", '梁': "Liang",
	'宋': "Song", '郑': "Zheng", '谢': "Xie", '韩': "Han", '唐': "Tang", '冯': "Feng",
	'于': "Yu", '董': "Dong", '萧': "Xiao", '程': "Cheng", '曹': "Cao", '袁': "Yuan",
	'许': "Xu", '傅': "Fu", '沈': "Shen", '曾': "Zeng", '彭': "Peng", '吕': "Lv",
	'苏': "Su", '卢': "Lu", '蒋': "Jiang", '蔡': "Cai", '贾': "Jia", '丁': "Ding",
	'魏': "Wei", '薛': "Xue", '叶': "Ye", '阎': "Yan", '余': "Yu", '潘': "Pan",
	'杜': "Du", '戴': "Dai", '夏': "Xia", '钟': "Zhong", '汪': "Wang", '田': "Tian",
	'任': "Ren", '姜': "Jiang", '范': "Fan", '方': "Fang", '石': "Shi", '姚': "Yao",
	'谭': "Tan", '廖': "Liao", '邹': "Zou", '熊': "Xiong", '金': "Jin", '陆': "Lu",
	'郝': "Hao", '孔': "Kong", '白': "Bai", '崔': "Cui", '康': "Kang", '毛': "Mao",
	'邱': "Qiu", '秦': "Qin", '江': "Jiang", '史': "Shi", '顾': "Gu", '侯': "Hou",
	'邵': "Shao", '孟': "Meng", '龙': "Long", '万': "Wan", '段': "Duan", '雷': "Lei",
	'钱': "Qian", '汤': "Tang", '尹': "Yin", '黎': "Li", '易': "Yi", '常': "Chang",
	'武': "Wu", '乔': "Qiao", '贺': "He", '赖': "Lai", '龚': "Gong", '文': "Wen",
	'厚': "Hou", '凡': "Fan", '成': "Cheng", '琮': "Cong", '瑜': "Yu", '辰': "Chen",
	'轩': "Xuan", '简': "Jian", '伟': "Wei", '肇': "Zhao", '优': "You", '卫': "Wei",
	'佳': "Jia", '俊': "Jun", '飞': "Fei", '立': "Li", '炜': "Wei",
	'学': "Xue", '萌': "Meng",
}

// commonSurnames decides surname-first versus given-name-first ordering
// when merging romanized tokens.
var commonSurnames = map[string]bool{
	"wang": true, "zhang": true, "li": true, "liu": true, "chen": true,
	"yang": true, "zhao": true, "huang": true, "zhou": true, "wu": true,
	"xu": true, "sun": true, "hu": true, "zhu": true, "gao": true,
	"lin": true, "guo": true, "deng": true, "he": true, "shi": true,
	"tian": true, "ma": true, "luo": true, "liang": true, "song": true,
	"zheng": true, "xie": true, "han": true, "tang": true, "feng": true,
	"yu": true, "dong": true, "xiao": true, "cheng": true, "cao": true,
	"yuan": true, "fu": true, "shen": true, "zeng": true, "peng": true,
	"lv": true, "su": true, "lu": true, "jiang": true, "cai": true,
	"jia": true, "ding": true, "wei": true, "xue": true, "ye": true,
	"yan": true, "pan": true, "ji": true,
}

// HasCJK reports whether the string contains any CJK ideograph.
func HasCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// Romanize converts a CJK name to a capitalized Latin rendering using
// the bounded lookup table. Characters outside the table pass through.
// Consecutive romanized tokens are merged by consulting the surname
// list: a surname-initial token keeps its position, a surname-final
// token rotates to the front, and otherwise consecutive duplicate
// tokens collapse.
func Romanize(name string) string {
	var b strings.Builder
	for _, r := range name {
		if p, ok := pinyinTable[r]; ok {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(p)
		} else {
			b.WriteRune(r)
		}
	}

	words := strings.Fields(b.String())
	if len(words) < 2 {
		return strings.TrimSpace(b.String())
	}

	if commonSurnames[strings.ToLower(words[0])] {
		return words[0] + " " + strings.Join(words[1:], "")
	}
	if commonSurnames[strings.ToLower(words[len(words)-1])] {
		return words[len(words)-1] + " " + strings.Join(words[:len(words)-1], "")
	}

	merged := words[:1]
	for _, w := range words[1:] {
		if strings.EqualFold(w, merged[len(merged)-1]) {
			continue
		}
		merged = append(merged, w)
	}
	return strings.Join(merged, " ")
}

// Variants produces the match-only renderings of an author name: the
// original, the romanized form for CJK input, and the two token
// orderings so callers need not know which ordering the source used.
func Variants(name string) types.NameVariant {
	v := types.NameVariant{Original: name}
	base := name
	sep := " "
	if HasCJK(name) {
		v.Romanized = Romanize(name)
		base = v.Romanized
		// Romanized given-name syllables merge into one token.
		sep = ""
	}

	words := strings.Fields(base)
	if len(words) >= 2 {
		given := strings.Join(words[1:], sep)
		v.SurnameFirst = words[0] + " " + given
		v.GivenFirst = given + " " + words[0]
	}
	return v
}
