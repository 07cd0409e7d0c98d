// Package fuzztests houses Go fuzz harnesses that exercise the log analysis
// pipeline (source -> dispatcher -> tree builder). Its goal is to smoke test
// robustness and guard against panics or hangs on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые скармливают байты сканеру
// и полному разбору, и проверять структурные инварианты результата.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/parser, internal/testkit.

package fuzztests
