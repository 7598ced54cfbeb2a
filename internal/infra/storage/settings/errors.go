package settings

import "errors"

var (
	// ErrSettingNotFound возвращается, когда настройка с ключом не найдена
	ErrSettingNotFound = errors.New("settings.repository: setting not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("settings.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("settings.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("settings.repository: failed to scan row")

	// ErrDecode возвращается, когда значение настройки не удается разобрать
	ErrDecode = errors.New("settings.repository: failed to decode setting value")

	// ErrEncode возвращается при ошибке сериализации значения настройки
	ErrEncode = errors.New("settings.repository: failed to encode setting value")
)
