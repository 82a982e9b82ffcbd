package utils

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// 千分位格式的计数，如 1,234,567
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// 千分位格式的浮点数，保留prec位小数
func FormatFloat(v float64, prec int) string {
	return printer.Sprintf("%."+strconv.Itoa(prec)+"f", v)
}

func GetNowTimeTag() string {
	const tf = "20060102150405.000"
	t := time.Now().Format(tf)
	return t[:len(tf)-4] + t[len(tf)-3:]
}

// 右侧补空格至width（按rune计）
func PadRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
