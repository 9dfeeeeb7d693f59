package i18n

// Message keys.
const (
	NoFiles               = "no_files"
	Failed                = "failed"
	Formatting            = "formatting"
	Cancelled             = "cancelled"
	Complete              = "complete"
	CompleteFailed        = "complete_failed"
	FailedCount           = "failed_count"
	ViewDetails           = "view_details"
	FailedFiles           = "failed_files"
	InputExtensions       = "input_extensions"
	ExtensionsPlaceholder = "extensions_placeholder"
	Recursive             = "recursive"
	Yes                   = "yes"
	No                    = "no"
	CustomizeExclude      = "customize_exclude"
	InputExcludePatterns  = "input_exclude_patterns"
	ExcludePlaceholder    = "exclude_placeholder"
	NoHistory             = "no_history"
	UndoTitle             = "undo_title"
	UndoComplete          = "undo_complete"
	UndoFailed            = "undo_failed"
	PreviewTitle          = "preview_title"
	PreviewDescription    = "preview_description"
	ApplyChanges          = "apply_changes"
	CancelFormat          = "cancel_format"
	PreviewCancelled      = "preview_cancelled"
	StatusFormatting      = "status_formatting"
	StatusDone            = "status_done"
	SettingsPath          = "settings_path"
)

var catalogs = map[string]map[string]string{
	"en": {
		NoFiles:               "No files found to format",
		Failed:                "Failed to format directory: {0}",
		Formatting:            "Formatting files",
		Cancelled:             "Formatting cancelled",
		Complete:              "Formatting complete: {0} files succeeded",
		CompleteFailed:        "Formatting complete: {0} files succeeded, {1} files failed",
		FailedCount:           "{0} files failed to format",
		ViewDetails:           "View Details",
		FailedFiles:           "Failed files:",
		InputExtensions:       "Enter file extensions to format (comma-separated)",
		ExtensionsPlaceholder: "e.g., .js, .ts, .json",
		Recursive:             "Recursively format subdirectories?",
		Yes:                   "Yes",
		No:                    "No",
		CustomizeExclude:      "Customize exclude patterns?",
		InputExcludePatterns:  "Enter exclude patterns (comma-separated)",
		ExcludePlaceholder:    "e.g., **/node_modules/**, **/dist/**",
		NoHistory:             "Nothing to undo",
		UndoTitle:             "Undoing last format",
		UndoComplete:          "Undo complete: {0} files restored",
		UndoFailed:            "Undo failed: {0}",
		PreviewTitle:          "Format Preview: {0} files",
		PreviewDescription:    "The following files will be formatted",
		ApplyChanges:          "Apply Changes",
		CancelFormat:          "Cancel",
		PreviewCancelled:      "Format cancelled",
		StatusFormatting:      "Formatting: {0}",
		StatusDone:            "Format Directory Done",
		SettingsPath:          "Open Settings: {0}",
	},
	"zh-cn": {
		NoFiles:               "未找到需要格式化的文件",
		Failed:                "格式化目录失败: {0}",
		Formatting:            "正在格式化文件",
		Cancelled:             "格式化已取消",
		Complete:              "格式化完成: {0} 个文件成功",
		CompleteFailed:        "格式化完成: {0} 个文件成功, {1} 个文件失败",
		FailedCount:           "有 {0} 个文件格式化失败",
		ViewDetails:           "查看详情",
		FailedFiles:           "格式化失败的文件:",
		InputExtensions:       "输入要格式化的文件扩展名（用逗号分隔）",
		ExtensionsPlaceholder: "例如: .js, .ts, .json",
		Recursive:             "是否递归格式化子目录？",
		Yes:                   "是",
		No:                    "否",
		CustomizeExclude:      "是否自定义排除模式？",
		InputExcludePatterns:  "输入排除模式（用逗号分隔）",
		ExcludePlaceholder:    "例如: **/node_modules/**, **/dist/**",
		NoHistory:             "没有可撤销的操作",
		UndoTitle:             "正在撤销上次格式化",
		UndoComplete:          "撤销完成: 已恢复 {0} 个文件",
		UndoFailed:            "撤销失败: {0}",
		PreviewTitle:          "格式化预览: {0} 个文件",
		PreviewDescription:    "以下文件将被格式化",
		ApplyChanges:          "应用更改",
		CancelFormat:          "取消",
		PreviewCancelled:      "格式化已取消",
		StatusFormatting:      "正在格式化: {0}",
		StatusDone:            "目录格式化完成",
		SettingsPath:          "打开配置: {0}",
	},
}
